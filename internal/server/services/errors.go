package services

import "errors"

var (
	ErrCredentialsIncomplete = errors.New("email and password are required")
	ErrIdentityNotFound      = errors.New("user not found")
	ErrIncorrectCredential   = errors.New("incorrect password")

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrInvalidID             = errors.New("id must be a positive number")
	ErrInvalidPage           = errors.New("page number must be >= 0 and page size > 0")
)
