package store

import "errors"

var (
	// ErrNotFound reports that the referenced account or ticket is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail reports an email collision with another account.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidInput reports an out-of-range or malformed value; the store
	// is left untouched.
	ErrInvalidInput = errors.New("invalid input")
)
