package domain

import "errors"

var (
	ErrUnknownIdentity = errors.New("user not found")
	ErrAlreadyVoted    = errors.New("user has already voted")
	ErrUnknownOption   = errors.New("no such option")
	ErrOptionNotFound  = errors.New("option not found")
	ErrForbidden       = errors.New("not allowed")
	ErrInvalidProfile  = errors.New("name and surname are required")
	ErrNotFound        = errors.New("not found")
)
