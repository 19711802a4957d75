package errors

import "errors"

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidPayload = errors.New("referenced entity does not exist")
	ErrNotFound       = errors.New("not found")
	ErrInviteResolved = errors.New("meeting invite not found or already resolved")
)
