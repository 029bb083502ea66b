package auth

import "testing"

func TestAllowList(t *testing.T) {
	a := NewAllowList([]int64{10, 20})

	if !a.Allowed(10) {
		t.Error("Expected listed user to be allowed")
	}
	if a.Allowed(30) {
		t.Error("Expected unlisted user to be rejected")
	}
}

func TestAllowList_EmptyPermitsEveryone(t *testing.T) {
	a := NewAllowList(nil)

	if !a.Allowed(42) {
		t.Error("Expected any user to be allowed when no list is configured")
	}
}
