// Package auth issues and verifies bearer tokens and attaches the resulting
// identity to a request's context.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingClaim is returned by parse when sub, iat or exp is absent.
var ErrMissingClaim = errors.New("missing required claim")

// TokenService signs and verifies HS256 tokens carrying the sub, iat and exp
// claims. The secret and expiry are fixed at construction and never change,
// so a TokenService is safe for concurrent use.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService copies secret and captures expiry for the life of the service.
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Expiry is the lifetime given to every issued token.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue returns a signed token for subject with iat = now and
// exp = now + expiry. Claims have one-second resolution.
func (s *TokenService) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify reports whether token is signed with the configured secret, names
// expectedSubject, and has not expired at now (now < exp). Any parse failure
// yields false.
func (s *TokenService) Verify(token, expectedSubject string, now time.Time) bool {
	claims, err := s.parse(token,
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(claims.Subject), []byte(expectedSubject)) == 1
}

// ExtractSubject returns the sub claim of a correctly signed token without
// checking its time claims. ok is false for anything malformed.
func (s *TokenService) ExtractSubject(token string) (subject string, ok bool) {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func (s *TokenService) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrMissingClaim
	}
	return claims, nil
}
