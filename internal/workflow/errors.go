package workflow

import "fmt"

// ValidationError rejects bad input before any state mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}
