package workflow

import "testing"

func TestToken_RoundTrip(t *testing.T) {
	for _, action := range []Action{ActionApprove, ActionEdit, ActionImage, ActionCancel} {
		token := Token(action, "123e4567-e89b-12d3-a456-426614174000")

		gotAction, gotID, err := ParseToken(token)
		if err != nil {
			t.Fatalf("ParseToken(%q): %v", token, err)
		}
		if gotAction != action {
			t.Errorf("Expected action %s, got %s", action, gotAction)
		}
		if gotID != "123e4567-e89b-12d3-a456-426614174000" {
			t.Errorf("Unexpected ID %s", gotID)
		}
	}
}

func TestToken_FitsCallbackData(t *testing.T) {
	// Telegram caps callback data at 64 bytes.
	token := Token(ActionApprove, "123e4567-e89b-12d3-a456-426614174000")
	if len(token) > 64 {
		t.Errorf("Token too long for callback data: %d bytes", len(token))
	}
}

func TestParseToken_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"No separator", "approve"},
		{"Empty ID", "approve|"},
		{"Unknown action", "destroy|123e4567"},
		{"Swapped fields", "123e4567|approve"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseToken(tc.token); err == nil {
				t.Errorf("Expected ParseToken(%q) to fail", tc.token)
			}
		})
	}
}
