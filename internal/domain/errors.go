package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals malformed caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCursorNotFound signals an unknown or expired cursor.
	ErrCursorNotFound = errors.New("cursor not found")
	// ErrCorruptCursorState signals persisted query state that no longer deserializes.
	ErrCorruptCursorState = errors.New("corrupt cursor state")
	// ErrBackendUnavailable signals a failure communicating with the search backend.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrMalformedHit signals a hit whose document id does not decode.
	ErrMalformedHit = errors.New("malformed hit id")
	// ErrQueryParse signals an unparseable query string.
	ErrQueryParse = errors.New("query parse failed")
)

// CursorNotFoundError wraps ErrCursorNotFound with the cursor value the caller supplied.
type CursorNotFoundError struct {
	Cursor string
}

func (e *CursorNotFoundError) Error() string {
	return fmt.Sprintf("no cursor exists for the value '%s'", e.Cursor)
}

func (e *CursorNotFoundError) Unwrap() error { return ErrCursorNotFound }

// NewCursorNotFound creates a cursor-not-found error for the given cursor value.
func NewCursorNotFound(cursor string) error {
	return &CursorNotFoundError{Cursor: cursor}
}
