package generate

import (
	"context"
	"errors"
	"testing"
)

type countingClient struct {
	calls int
	err   error
}

func (c *countingClient) Generate(_ context.Context, title string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "guide for " + title, nil
}

func TestCached_ReusesSuccess(t *testing.T) {
	inner := &countingClient{}
	cached := NewCached(inner)

	first, err := cached.Generate(context.Background(), "Reset printer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := cached.Generate(context.Background(), "  reset PRINTER ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if first != second {
		t.Errorf("Expected identical cached text, got %q and %q", first, second)
	}
	if inner.calls != 1 {
		t.Errorf("Expected a single upstream call, got %d", inner.calls)
	}
}

func TestCached_DoesNotCacheFailures(t *testing.T) {
	inner := &countingClient{err: errors.New("boom")}
	cached := NewCached(inner)

	if _, err := cached.Generate(context.Background(), "Reset printer"); err == nil {
		t.Fatal("Expected an error")
	}

	inner.err = nil
	text, err := cached.Generate(context.Background(), "Reset printer")
	if err != nil {
		t.Fatalf("Generate after recovery: %v", err)
	}
	if text == "" {
		t.Error("Expected content after recovery")
	}
	if inner.calls != 2 {
		t.Errorf("Expected failure to hit upstream again, got %d calls", inner.calls)
	}
}
