package generate

import (
	"context"
	"strings"
)

// Mock is a placeholder Client for tests and local runs without an API
// key. It never calls out.
type Mock struct {
	// Err, when set, is returned instead of content.
	Err error
}

func (m Mock) Generate(_ context.Context, title string) (string, error) {
	if m.Err != nil {
		return "", &Error{Title: title, Err: m.Err}
	}

	var sb strings.Builder
	sb.WriteString("## Overview\n\n")
	sb.WriteString("Placeholder guide for *")
	sb.WriteString(title)
	sb.WriteString("*.\n\n")
	sb.WriteString("1. Step one\n2. Step two\n3. Step three\n")
	return sb.String(), nil
}
