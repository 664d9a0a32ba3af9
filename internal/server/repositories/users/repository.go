// Package users stores user accounts.
package users

import (
	"context"
	"fmt"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/server/models"
)

// Both wrap common.ErrorAlreadyExists.
var (
	ErrEmailTaken    = fmt.Errorf("email %w", common.ErrorAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username %w", common.ErrorAlreadyExists)
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error)
	FindByUsernameAndEnabled(ctx context.Context, username string, enabled bool) (*models.User, error)
	// List returns one page of users matching filter ordered by id, plus the
	// total number of matches.
	List(ctx context.Context, filter models.UserFilter, offset, limit int) ([]*models.User, int64, error)
	Delete(ctx context.Context, id int64) error
}
