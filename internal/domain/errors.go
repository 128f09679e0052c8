package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Reference errors
	ErrSlugRequired     = errors.New("slug required")
	ErrInvalidReference = errors.New("invalid image reference")

	// Image errors
	ErrImageNotFound = errors.New("image not found")
	ErrImageExists   = errors.New("image already declared")
	ErrExternalImage = errors.New("image is external and cannot be pushed")
	ErrUnknownKind   = errors.New("unknown image kind")
	ErrTransport     = errors.New("transport failure")

	// Goal errors
	ErrGoalUnreachable = errors.New("goal unreachable")

	// Config errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrUnknownBackend = errors.New("unknown secrets backend")

	// Secret errors
	ErrPathTraversal     = errors.New("path traversal not allowed")
	ErrInvalidSecretPath = errors.New("invalid secret path")
)

// ValidationError reports a malformed reference component.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GoalUnreachableError describes why a goal cannot be reached from the
// current state. It is returned as a value inside goal results.
type GoalUnreachableError struct {
	Goal   string
	From   ImageState
	Reason string
}

func (e *GoalUnreachableError) Error() string {
	return fmt.Sprintf("goal %q unreachable from %q: %s", e.Goal, e.From, e.Reason)
}

func (e *GoalUnreachableError) Is(target error) bool {
	return target == ErrGoalUnreachable
}

// TransportError wraps a failure reported by the image transport.
type TransportError struct {
	Op  string
	Ref string
	Err error
}

func (e *TransportError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
