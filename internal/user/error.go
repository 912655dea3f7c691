package user

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingSecret      = errors.New("JWT secret is not set")
	ErrInvalidToken       = errors.New("invalid token")
)
