package services

import (
	"context"
	"errors"
	"time"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/models"
)

// Credential is a login attempt.
type Credential struct {
	Email    string
	Password string
}

// UserLookup finds an account by email and enabled flag, returning
// common.ErrorNotFound when there is none.
type UserLookup interface {
	FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error)
}

// AuthService exchanges a credential for a bearer token. It holds no
// per-request state.
type AuthService struct {
	users  UserLookup
	hasher auth.PasswordHasher
	tokens *auth.TokenService
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(users UserLookup, hasher auth.PasswordHasher, tokens *auth.TokenService,
	logger logging.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Login returns a signed token whose subject is the account email.
func (s *AuthService) Login(ctx context.Context, c Credential) (string, error) {
	if c.Email == "" || c.Password == "" {
		return "", ErrCredentialsIncomplete
	}

	user, err := s.users.FindByEmailAndEnabled(ctx, c.Email, true)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login rejected", "reason", "unknown or disabled account")
			return "", ErrIdentityNotFound
		}
		return "", internal(err)
	}

	if err := s.hasher.Compare(c.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn(ctx, "login rejected", "reason", "incorrect password", "id", user.ID)
			return "", ErrIncorrectCredential
		}
		return "", internal(err)
	}

	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return "", internal(err)
	}

	s.logger.Info(ctx, "login succeeded", "subject", user.Email)
	return token, nil
}
