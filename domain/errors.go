package domain

import "fmt"

// ValidationError reports a missing or empty required field. The operation
// is not attempted against the store.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NotFoundError reports an absent referenced entity. The operation has no
// partial effect.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
