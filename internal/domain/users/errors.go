package users

import "errors"

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidRole       = errors.New("role must be hr, committee or evaluatee")
)
