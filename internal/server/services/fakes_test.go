package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vmtecnologia/usersvc/internal/common"
	"github.com/vmtecnologia/usersvc/internal/dbx"
	"github.com/vmtecnologia/usersvc/internal/server/auth"
	"github.com/vmtecnologia/usersvc/internal/server/models"
	usersrepo "github.com/vmtecnologia/usersvc/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo keeps users in memory keyed by email.
type fakeUsersRepo struct {
	byEmail map[string]*models.User
	nextID  int64

	findErr   error
	createErr error
	updateErr error
	listErr   error
	deleteErr error

	lastFilter        models.UserFilter
	lastOffset, limit int
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}, nextID: 100}
	for _, u := range users {
		cp := *u
		f.byEmail[u.Email] = &cp
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.byEmail[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) FindByEmailAndEnabled(ctx context.Context, email string, enabled bool) (*models.User, error) {
	u, err := f.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Enabled != enabled {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) FindByUsernameAndEnabled(_ context.Context, username string, enabled bool) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byEmail {
		if u.Username == username && u.Enabled == enabled {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(_ context.Context, filter models.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	f.lastFilter, f.lastOffset, f.limit = filter, offset, limit
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*models.User
	for _, u := range f.byEmail {
		if filter.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(filter.Username)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUsersRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, k)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }

type fakeNotifier struct {
	created, updated []string
	err              error
}

func (n *fakeNotifier) UserCreated(_ context.Context, email, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.created = append(n.created, email)
	return nil
}

func (n *fakeNotifier) UserUpdated(_ context.Context, email, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.updated = append(n.updated, email)
	return nil
}

// plainHasher stores passwords with a fixed prefix so tests stay fast.
type plainHasher struct {
	err error
}

func (h plainHasher) Hash(p string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + p, nil
}

func (h plainHasher) Compare(plain, hashed string) error {
	if !strings.HasPrefix(hashed, "hashed:") {
		return errors.New("malformed hash")
	}
	if hashed != "hashed:"+plain {
		return auth.ErrPasswordMismatch
	}
	return nil
}
