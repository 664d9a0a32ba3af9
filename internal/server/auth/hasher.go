package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch is returned by Compare when the password does not
	// match the hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrPasswordTooLong is returned by Hash for passwords bcrypt cannot accept.
	ErrPasswordTooLong = errors.New("password must not exceed 72 bytes")
)

// PasswordHasher hashes passwords one way and compares candidates against
// stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(plain, hashed string) error
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil on a match, ErrPasswordMismatch on a mismatch, and the
// bcrypt error for a malformed hash.
func (h *BcryptHasher) Compare(plain, hashed string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
