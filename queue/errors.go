package queue

import "errors"

var (
	// ErrValidation marks a booking rejected for missing or malformed input.
	ErrValidation = errors.New("invalid booking input")
	// ErrNotFound marks a reference to a service, branch or token that does
	// not exist or is inactive.
	ErrNotFound = errors.New("not found")
	// ErrNumberConflict is returned when the token number unique index
	// rejects an insert. The issuer retries the booking once.
	ErrNumberConflict = errors.New("token number conflict")
)
