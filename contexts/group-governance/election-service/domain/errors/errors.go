package errors

import "errors"

var (
	// ErrMissingFields is returned when required inputs are absent. Callers
	// wrap it with the missing field names.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidPayload is returned when a referenced entity does not exist
	// or cross-references are inconsistent.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNotFound is returned when the targeted election or position is absent.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted is returned when a voting right already exists for the
	// caller's (election, position) pair.
	ErrAlreadyVoted = errors.New("already voted for this position")

	// ErrAlreadyNominated is returned when the nominee already holds a
	// candidate row for the position.
	ErrAlreadyNominated = errors.New("candidate already nominated for this position")
)
