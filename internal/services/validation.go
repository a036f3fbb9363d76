package services

import (
	apierrors "github.com/eventpulse/eventpulse-api/internal/errors"
)

// ValidationError carries the field-level issues of a rejected request.
// Validation runs before any query executes; a request failing it is never
// partially applied.
type ValidationError struct {
	Issues []apierrors.FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "validation failed: " + e.Issues[0].Field + " " + e.Issues[0].Message
	}
	return "validation failed"
}

func (e *ValidationError) add(field, message string) {
	e.Issues = append(e.Issues, apierrors.FieldIssue{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}
