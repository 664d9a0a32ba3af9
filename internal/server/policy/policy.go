// Package policy decides whether a candidate username, e-mail and password are
// acceptable for a user record. It performs no I/O; callers decide what to do
// with a rejection.
package policy

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

var (
	ErrPasswordMissing = errors.New("password must not be empty")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long and contain a digit, an uppercase letter and a special character")
	ErrUsernameMissing = errors.New("username must not be blank")
	ErrEmailInvalid    = errors.New("invalid e-mail address")
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w-]+\.[a-z]{2,}$`)

// Validate applies the rules in a fixed order and returns the first violation,
// or nil when the credentials are acceptable:
//
//  1. password present (ErrPasswordMissing)
//  2. password strength (ErrPasswordTooWeak)
//  3. username not blank (ErrUsernameMissing)
//  4. e-mail shape (ErrEmailInvalid)
func Validate(username, email, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if strings.TrimSpace(username) == "" {
		return ErrUsernameMissing
	}
	if !ValidEmail(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword applies the two password rules of Validate.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordMissing
	}
	if !strongPassword(password) {
		return ErrPasswordTooWeak
	}
	return nil
}

// ValidEmail reports whether email has the accepted local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// strongPassword requires MinPasswordLength characters, an ASCII digit, an
// ASCII uppercase letter and a character outside [A-Za-z0-9_] and whitespace.
// Line terminators are not allowed anywhere.
func strongPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var digit, upper, special bool
	for _, r := range password {
		switch {
		case isLineTerminator(r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case isWordChar(r), isSpace(r):
		default:
			special = true
		}
	}

	return digit && upper && special
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
