package engine

import "fmt"

// ValidationError rejects user input at the boundary. No state changes when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
