package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/movievault/backend/internal/model"
)

// memDirectory is an in-memory UserDirectory for tests. It mimics the
// store's error surface: pgx.ErrNoRows for absent records, a 23505
// PgError for unique violations.
type memDirectory struct {
	mu    sync.Mutex
	seq   int64
	users map[string]*model.User
}

func newMemDirectory() *memDirectory {
	return &memDirectory{users: make(map[string]*model.User)}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
}

func (d *memDirectory) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[user.Username]; ok {
		return nil, uniqueViolation()
	}
	d.seq++
	stored := *user
	stored.ID = d.seq
	if stored.FavoriteMovies == nil {
		stored.FavoriteMovies = []string{}
	}
	d.users[stored.Username] = &stored
	return copyUser(&stored), nil
}

func (d *memDirectory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyUser(user), nil
}

func (d *memDirectory) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, user := range d.users {
		if user.ID == id {
			return copyUser(user), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (d *memDirectory) ListUsers(_ context.Context) ([]model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := make([]model.User, 0, len(d.users))
	for _, user := range d.users {
		list = append(list, *copyUser(user))
	}
	return list, nil
}

func (d *memDirectory) UpdateUser(_ context.Context, username string, user *model.User) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	current, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if user.Username != username {
		if _, taken := d.users[user.Username]; taken {
			return nil, uniqueViolation()
		}
	}
	updated := *user
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if updated.FavoriteMovies == nil {
		updated.FavoriteMovies = []string{}
	}
	delete(d.users, username)
	d.users[updated.Username] = &updated
	return copyUser(&updated), nil
}

func (d *memDirectory) DeleteUser(_ context.Context, username string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[username]; !ok {
		return pgx.ErrNoRows
	}
	delete(d.users, username)
	return nil
}

func (d *memDirectory) AddFavorite(_ context.Context, username, movieID string) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	present := false
	for _, id := range user.FavoriteMovies {
		if id == movieID {
			present = true
			break
		}
	}
	if !present {
		user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	}
	return copyUser(user), nil
}

func (d *memDirectory) RemoveFavorite(_ context.Context, username, movieID string) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	kept := user.FavoriteMovies[:0]
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	return copyUser(user), nil
}

func copyUser(user *model.User) *model.User {
	clone := *user
	clone.FavoriteMovies = append([]string{}, user.FavoriteMovies...)
	return &clone
}
