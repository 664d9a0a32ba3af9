// Package models holds the persistence-facing types of usersvc.
package models

import "time"

// User is a stored user record. PasswordHash is a bcrypt hash and must never be
// returned to clients.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserFilter narrows a user listing. Empty strings and a nil Enabled mean
// "do not filter on this field".
type UserFilter struct {
	Username string
	Email    string
	Enabled  *bool
}

// IsEmpty reports whether no predicate is set.
func (f UserFilter) IsEmpty() bool {
	return f.Username == "" && f.Email == "" && f.Enabled == nil
}
