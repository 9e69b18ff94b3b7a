package service

import (
	"context"
	"fmt"
	"time"

	"github.com/movievault/backend/internal/db"
	"github.com/movievault/backend/internal/model"
)

// UserDirectory is the persistence boundary for identity records. Every
// method operates on a single record atomically; absent records surface
// as the store's no-rows error.
type UserDirectory interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, username string, user *model.User) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*model.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error)
}

type UserService struct {
	directory UserDirectory
}

func NewUserService(directory UserDirectory) *UserService {
	return &UserService{directory: directory}
}

func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	_, err := s.directory.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: %s already exists", ErrConflict, req.Username)
	}
	if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	user, err := s.directory.CreateUser(ctx, &model.User{
		Username:       req.Username,
		PasswordHash:   hash,
		Email:          req.Email,
		Birthday:       birthday,
		FavoriteMovies: dedupe(req.FavoriteMovies),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s already exists", ErrConflict, req.Username)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies field updates to the record stored under
// pathUsername. The check order is fixed: existence of the current
// record, then the rename conflict, then the write. A no-op rename
// (same name in path and body) skips the conflict check entirely, so
// it can never report a false conflict.
func (s *UserService) UpdateProfile(ctx context.Context, pathUsername string, req *model.UpdateUserRequest) (*model.User, error) {
	current, err := s.directory.GetUserByUsername(ctx, pathUsername)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, pathUsername)
		}
		return nil, err
	}

	if req.Username != pathUsername {
		existing, err := s.directory.GetUserByUsername(ctx, req.Username)
		if err == nil && existing.ID != current.ID {
			return nil, fmt.Errorf("%w: username %s already exists", ErrConflict, req.Username)
		}
		if err != nil && !db.IsNoRows(err) {
			return nil, err
		}
	}

	hash := current.PasswordHash
	if req.Password != "" {
		hash, err = HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}

	birthday := current.Birthday
	if req.Birthday != nil {
		birthday, err = parseBirthday(req.Birthday)
		if err != nil {
			return nil, err
		}
	}

	favorites := current.FavoriteMovies
	if req.FavoriteMovies != nil {
		favorites = dedupe(req.FavoriteMovies)
	}

	updated, err := s.directory.UpdateUser(ctx, pathUsername, &model.User{
		Username:       req.Username,
		PasswordHash:   hash,
		Email:          req.Email,
		Birthday:       birthday,
		FavoriteMovies: favorites,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %s already exists", ErrConflict, req.Username)
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.directory.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.directory.ListUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	err := s.directory.DeleteUser(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return err
	}
	return nil
}

// AddFavorite is an idempotent set insertion; adding a movie twice
// leaves a single occurrence.
func (s *UserService) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	user, err := s.directory.AddFavorite(ctx, username, movieID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

// RemoveFavorite is an idempotent set removal; removing an absent movie
// is a no-op, not an error.
func (s *UserService) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	user, err := s.directory.RemoveFavorite(ctx, username, movieID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
		}
		return nil, err
	}
	return user, nil
}

func parseBirthday(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday: %w", err)
	}
	return &parsed, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
