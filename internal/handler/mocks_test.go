package handler

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/movievault/backend/internal/model"
)

// fakeDirectory is a minimal in-memory UserDirectory for handler tests.
type fakeDirectory struct {
	seq   int64
	users map[string]*model.User
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]*model.User)}
}

func (d *fakeDirectory) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if _, ok := d.users[user.Username]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	d.seq++
	stored := *user
	stored.ID = d.seq
	if stored.FavoriteMovies == nil {
		stored.FavoriteMovies = []string{}
	}
	d.users[stored.Username] = &stored
	return &stored, nil
}

func (d *fakeDirectory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (d *fakeDirectory) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	for _, user := range d.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (d *fakeDirectory) ListUsers(_ context.Context) ([]model.User, error) {
	list := make([]model.User, 0, len(d.users))
	for _, user := range d.users {
		list = append(list, *user)
	}
	return list, nil
}

func (d *fakeDirectory) UpdateUser(_ context.Context, username string, user *model.User) (*model.User, error) {
	current, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if user.Username != username {
		if _, taken := d.users[user.Username]; taken {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	updated := *user
	updated.ID = current.ID
	if updated.FavoriteMovies == nil {
		updated.FavoriteMovies = []string{}
	}
	delete(d.users, username)
	d.users[updated.Username] = &updated
	return &updated, nil
}

func (d *fakeDirectory) DeleteUser(_ context.Context, username string) error {
	if _, ok := d.users[username]; !ok {
		return pgx.ErrNoRows
	}
	delete(d.users, username)
	return nil
}

func (d *fakeDirectory) AddFavorite(_ context.Context, username, movieID string) (*model.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	for _, id := range user.FavoriteMovies {
		if id == movieID {
			return user, nil
		}
	}
	user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	return user, nil
}

func (d *fakeDirectory) RemoveFavorite(_ context.Context, username, movieID string) (*model.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	kept := make([]string, 0, len(user.FavoriteMovies))
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	return user, nil
}

// stubAuthorizer satisfies service.TokenAuthorizer with a canned result.
type stubAuthorizer struct {
	user *model.User
	err  error
}

func (s stubAuthorizer) Authorize(_ context.Context, _ string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

var errStubUnauthorized = errors.New("unauthorized")
