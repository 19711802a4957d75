package errors

import "errors"

var (
	// ErrNotFound is returned when the notification does not exist or
	// belongs to another user.
	ErrNotFound = errors.New("notification not found")
)
