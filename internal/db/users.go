package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/movievault/backend/internal/model"
)

const userColumns = `id, username, password_hash, email, birthday, favorite_movies, created_at, updated_at`

func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email TEXT NOT NULL,
			birthday DATE,
			favorite_movies TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS movies (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			genre_name TEXT NOT NULL DEFAULT '',
			genre_description TEXT NOT NULL DEFAULT '',
			director_name TEXT NOT NULL DEFAULT '',
			director_bio TEXT NOT NULL DEFAULT '',
			director_birth TEXT NOT NULL DEFAULT '',
			director_death TEXT NOT NULL DEFAULT '',
			image_path TEXT NOT NULL DEFAULT '',
			featured BOOLEAN NOT NULL DEFAULT FALSE
		)
		`,
		`CREATE INDEX IF NOT EXISTS movies_genre_name_idx ON movies(genre_name)`,
		`CREATE INDEX IF NOT EXISTS movies_director_name_idx ON movies(director_name)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, birthday, favorite_movies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
		user.FavoriteMovies,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *user)
	}

	if list == nil {
		list = []model.User{}
	}
	return list, rows.Err()
}

// UpdateUser rewrites the mutable fields of the record currently stored
// under username. The caller is responsible for uniqueness checks when
// user.Username differs from username.
func (db *Postgres) UpdateUser(ctx context.Context, username string, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET username = $2,
		    password_hash = $3,
		    email = $4,
		    birthday = $5,
		    favorite_movies = $6,
		    updated_at = NOW()
		WHERE username = $1
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		username,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Birthday,
		user.FavoriteMovies,
	)
	return scanUser(row)
}

func (db *Postgres) DeleteUser(ctx context.Context, username string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddFavorite appends movieID to the favorites array unless it is already
// present. Single UPDATE, so concurrent adds serialize on the row.
func (db *Postgres) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	query := `
		UPDATE users
		SET favorite_movies = CASE
			WHEN $2 = ANY(favorite_movies) THEN favorite_movies
			ELSE array_append(favorite_movies, $2)
		END,
		    updated_at = NOW()
		WHERE username = $1
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, username, movieID))
}

// RemoveFavorite drops movieID from the favorites array. Removing an
// absent id leaves the array unchanged.
func (db *Postgres) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	query := `
		UPDATE users
		SET favorite_movies = array_remove(favorite_movies, $2),
		    updated_at = NOW()
		WHERE username = $1
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, username, movieID))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Birthday,
		&user.FavoriteMovies,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}
	return &user, nil
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
