package app

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when a query is submitted before the knowledge
// base has any indexed documents. No responder call is made in that case.
var ErrNotReady = errors.New("knowledge base is not ready")

// ErrUserExists is returned by UserStore.Create for a taken username.
var ErrUserExists = errors.New("username already exists")

// ErrPersist is returned when the credential table cannot be written.
var ErrPersist = errors.New("could not save user database")

// ErrUnknownConversation signals an activate/rename/delete against an id
// that is not in the collection. This is a programmer error, not a
// recoverable runtime condition.
var ErrUnknownConversation = errors.New("unknown conversation id")

// ValidationError describes a rejected sign-up field. The credential table
// is left untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError wraps any fault from the answer model. The user's turn
// stays recorded; no assistant turn is appended.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
