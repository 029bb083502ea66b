package session

import "testing"

func TestRouter_PendingEdit(t *testing.T) {
	r := NewRouter()
	r.SetPendingEdit(1, "draft-a")

	t.Run("Take returns the target", func(t *testing.T) {
		id, ok := r.TakePendingEdit(1)
		if !ok {
			t.Fatal("Expected a pending edit")
		}
		if id != "draft-a" {
			t.Errorf("Expected draft-a, got %s", id)
		}
	})

	t.Run("Second take finds nothing", func(t *testing.T) {
		if _, ok := r.TakePendingEdit(1); ok {
			t.Error("Expected the intent to be consumed")
		}
	})

	t.Run("Other users are unaffected", func(t *testing.T) {
		if _, ok := r.TakePendingEdit(2); ok {
			t.Error("Expected no intent for user 2")
		}
	})
}

func TestRouter_PendingImage(t *testing.T) {
	r := NewRouter()
	r.SetPendingImage(1, "draft-a")

	t.Run("Read does not consume", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			id, ok := r.PendingImage(1)
			if !ok || id != "draft-a" {
				t.Fatalf("Read %d: expected draft-a, got %s/%v", i, id, ok)
			}
		}
	})

	t.Run("Edit intent does not answer image reads", func(t *testing.T) {
		r.SetPendingEdit(1, "draft-a")
		if _, ok := r.PendingImage(1); ok {
			t.Error("Expected no pending image after intent switched to edit")
		}
	})
}

func TestRouter_Overwrite(t *testing.T) {
	r := NewRouter()
	r.SetPendingEdit(1, "draft-a")
	r.SetPendingImage(1, "draft-b")

	if _, ok := r.TakePendingEdit(1); ok {
		t.Error("Expected the edit intent to have been replaced")
	}
	id, ok := r.PendingImage(1)
	if !ok || id != "draft-b" {
		t.Errorf("Expected pending image draft-b, got %s/%v", id, ok)
	}
}

func TestRouter_ClearTarget(t *testing.T) {
	r := NewRouter()
	r.SetPendingEdit(1, "draft-a")
	r.SetPendingImage(2, "draft-a")
	r.SetPendingImage(3, "draft-b")

	r.ClearTarget("draft-a")

	if _, ok := r.TakePendingEdit(1); ok {
		t.Error("Expected user 1's intent to be cleared")
	}
	if _, ok := r.PendingImage(2); ok {
		t.Error("Expected user 2's intent to be cleared")
	}
	if id, ok := r.PendingImage(3); !ok || id != "draft-b" {
		t.Error("Expected user 3's intent to survive")
	}
}
