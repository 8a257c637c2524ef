package store

import "errors"

var (
	// ErrNotFound is returned when the user document does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when another account already uses the email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateEntry is returned when a saved page with the same url exists.
	ErrDuplicateEntry = errors.New("page already saved")
)
