package user

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAnonymousUser      = errors.New("anonymous users have no credentials")
	ErrUserNotFound       = errors.New("user not found")
)
