package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures. Callers branch on these with
// errors.Is to surface user-facing notices.
var (
	ErrNotFound          = errors.New("node not found")
	ErrCannotDeleteRoot  = errors.New("cannot delete root")
	ErrHasChildren       = errors.New("node has children")
	ErrRootHasNoSiblings = errors.New("root has no siblings")
)

// DeleteError reports why a delete was rejected. No mutation happens
// when a DeleteError is returned.
type DeleteError struct {
	ID     string
	Reason error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("cannot delete %s: %s", e.ID, e.Reason)
}

func (e *DeleteError) Is(target error) bool {
	return errors.Is(e.Reason, target)
}

func (e *DeleteError) Unwrap() error {
	return e.Reason
}
