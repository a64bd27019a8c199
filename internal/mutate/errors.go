package mutate

import "fmt"

// NotFoundError is what CLI callers report when a reference does not resolve.
// The engine itself treats unresolved references as no-ops.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
