package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMock_Generate(t *testing.T) {
	text, err := Mock{}.Generate(context.Background(), "Reset printer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		t.Error("Expected non-empty content")
	}
	if !strings.Contains(text, "Reset printer") {
		t.Errorf("Expected the title in the output, got %q", text)
	}
}

func TestMock_Error(t *testing.T) {
	cause := fmt.Errorf("quota exceeded")
	_, err := Mock{Err: cause}.Generate(context.Background(), "Reset printer")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if gerr.Title != "Reset printer" {
		t.Errorf("Expected the failing title to be carried, got %q", gerr.Title)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the cause to be wrapped")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected a human-readable cause, got %q", err.Error())
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt("Reset printer")
	if got != "Title: Reset printer" {
		t.Errorf("Unexpected prompt %q", got)
	}
}
