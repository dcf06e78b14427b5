package loan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("loan not found")
	ErrInvalidTransition  = errors.New("invalid loan state transition")
	ErrInvalidState       = errors.New("operation not allowed in current loan state")
	ErrUnauthorized       = errors.New("actor not authorized for this loan")
	ErrInvalidApplication = errors.New("invalid loan application")
	ErrStoreConflict      = errors.New("concurrent write conflict")
)

// FieldIssue names one application field that failed its declared bound.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ApplicationError carries the per-field violations behind
// ErrInvalidApplication so callers can report them all at once.
type ApplicationError struct {
	Issues []FieldIssue
}

func (e *ApplicationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s %s", i.Field, i.Message))
	}
	return "invalid loan application: " + strings.Join(parts, "; ")
}

func (e *ApplicationError) Unwrap() error { return ErrInvalidApplication }
