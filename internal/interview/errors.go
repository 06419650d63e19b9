package interview

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a malformed or empty profile or requirement.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSessionState marks an operation that is not allowed in the current session state.
	ErrSessionState = errors.New("invalid session state")
	// ErrNoActiveQuestion is returned when a session has no pending question.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrSessionNotFound is returned by the registry for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")
)

// InvalidInputError wraps the validation failure that rejected a session.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *InvalidInputError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// SessionStateError reports an operation rejected by the session state machine.
type SessionStateError struct {
	Op     string
	Status Status
	Reason string
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("%s: session is %s: %s", e.Op, e.Status, e.Reason)
}

func (e *SessionStateError) Unwrap() error {
	return ErrSessionState
}
