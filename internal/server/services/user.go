// Package services contains the server-side business logic: account
// management in UserService and credential login in AuthService.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/dbx"
	"github.com/vmtecnologia/usersvc/internal/logging"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/models"
	"github.com/vmtecnologia/usersvc/internal/server/notify"
	"github.com/vmtecnologia/usersvc/internal/server/policy"
	"github.com/vmtecnologia/usersvc/internal/server/repositories/repomanager"
	"github.com/vmtecnologia/usersvc/internal/server/repositories/users"
)

// UserInput carries the writable fields of an account. A nil Enabled means
// true on create and "keep current" on update.
type UserInput struct {
	Username string
	Email    string
	Password string
	Enabled  *bool
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	notifier    notify.Notifier
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	notifier notify.Notifier, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create registers a new account. The insert and the welcome notification
// share one transaction, so a failed notification leaves no row behind.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, internal(err)
	}

	if err := policy.Validate(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Enabled:      in.Enabled == nil || *in.Enabled,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return conflict(err)
		}
		user = created
		if err := s.notifier.UserCreated(ctx, user.Email, user.Username); err != nil {
			return internal(fmt.Errorf("notify: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "id", user.ID)
	return user, nil
}

// Update replaces username, password and, when given, enabled on the account
// identified by in.Email.
func (s *UserService) Update(ctx context.Context, in UserInput) (*models.User, error) {
	if err := policy.Validate(in.Username, in.Email, in.Password); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal(err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.PasswordHash = hash
	if in.Enabled != nil {
		user.Enabled = *in.Enabled
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.repomanager.Users(tx).Update(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrUserNotFound
			}
			return conflict(err)
		}
		user = updated
		if err := s.notifier.UserUpdated(ctx, user.Email, user.Username); err != nil {
			return internal(fmt.Errorf("notify: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "id", user.ID)
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal(err)
	}
	return user, nil
}

// FindByEmailAndEnabled passes common.ErrorNotFound through unchanged.
func (s *UserService) FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByEmailAndEnabled(ctx, email, enabled)
}

// FindByUsernameAndEnabled passes common.ErrorNotFound through unchanged.
func (s *UserService) FindByUsernameAndEnabled(ctx context.Context, username string, enabled bool) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByUsernameAndEnabled(ctx, username, enabled)
}

// List returns the zero-based page of accounts matching filter.
func (s *UserService) List(ctx context.Context, filter models.UserFilter, page, size int) (*models.Page[*models.User], error) {
	if page < 0 || size <= 0 || page > math.MaxInt/size {
		return nil, ErrInvalidPage
	}
	items, total, err := s.repomanager.Users(s.db).List(ctx, filter, page*size, size)
	if err != nil {
		return nil, internal(err)
	}
	return models.NewPage(items, page, size, total), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repomanager.Users(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrUserNotFound
		}
		return internal(err)
	}
	s.logger.Info(ctx, "user deleted", "id", id)
	return nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", err
		}
		return "", internal(err)
	}
	return hash, nil
}

func conflict(err error) error {
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		return ErrEmailAlreadyExists
	case errors.Is(err, users.ErrUsernameTaken):
		return ErrUsernameAlreadyExists
	default:
		return internal(err)
	}
}

func internal(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
