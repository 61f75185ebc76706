package store

import "fmt"

// NotFoundError reports a mutation referencing an unknown incident id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("incident %s not found", e.ID)
}

// ConflictError reports an Add with an already-present incident id.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("incident %s already exists", e.ID)
}
