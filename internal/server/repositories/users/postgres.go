package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/dbx"
	"github.com/vmtecnologia/usersvc/internal/server/models"
)

const uniqueViolation = "23505"

const selectColumns = `SELECT id, username, email, password, enabled, created_at, updated_at FROM users`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password, enabled)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Enabled).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, mapWriteError(err)
	}

	return user, nil
}

// Update overwrites username, password and enabled of the row with user.ID.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET username = $1, password = $2, enabled = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Enabled, user.ID).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, mapWriteError(err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, selectColumns+` WHERE email = $1`, email)
}

func (r *PostgresRepository) FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error) {
	return r.findOne(ctx, selectColumns+` WHERE email = $1 AND enabled = $2`, email, enabled)
}

func (r *PostgresRepository) FindByUsernameAndEnabled(ctx context.Context, username string, enabled bool) (*models.User, error) {
	return r.findOne(ctx, selectColumns+` WHERE username = $1 AND enabled = $2`, username, enabled)
}

func (r *PostgresRepository) List(ctx context.Context, filter models.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	where, args := buildFilter(filter)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	n := len(args)
	query := selectColumns + where +
		` ORDER BY id LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := scanUser(rows, u); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := scanUser(r.db.QueryRowContext(ctx, query, args...), user)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *models.User) error {
	return s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
}

// buildFilter renders the non-empty parts of filter as a WHERE clause.
// Username and email match case-insensitively anywhere in the value.
func buildFilter(f models.UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if f.Username != "" {
		add("LOWER(username) LIKE ?", "%"+strings.ToLower(f.Username)+"%")
	}
	if f.Email != "" {
		add("LOWER(email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.Enabled != nil {
		add("enabled = ?", *f.Enabled)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return ErrUsernameTaken
		}
		return ErrEmailTaken
	}
	return fmt.Errorf("db error: %w", err)
}
