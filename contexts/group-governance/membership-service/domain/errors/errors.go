package errors

import "errors"

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidPayload = errors.New("referenced entity does not exist")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyMember  = errors.New("user is already a member of this group")
	ErrInviteResolved = errors.New("invite not found or already resolved")
)
