// Package common defines sentinel errors and constants shared by the
// repository, service and transport layers. Callers should match the
// errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
