package user

import "errors"

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid full name")
	ErrPasswordMissing = errors.New("password hash is required")
)
