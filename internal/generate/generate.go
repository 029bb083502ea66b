// Package generate wraps the external text-generation provider behind a
// small client interface so the workflow engine never talks to a vendor
// SDK directly and tests can swap in a mock.
package generate

import (
	"context"
	"fmt"
)

// Client turns a guide title into prose. Implementations must treat
// empty or whitespace-only provider output as a failure, never as a
// usable guide.
type Client interface {
	Generate(ctx context.Context, title string) (string, error)
}

// Error is any provider failure: unreachable, rejected, quota, or
// empty output. It is recoverable from the user's point of view (they
// are told to retry); the engine never retries on its own.
type Error struct {
	Title string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generate %q: %v", e.Title, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
