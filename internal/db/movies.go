package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/movievault/backend/internal/model"
)

const movieColumns = `id, title, description, genre_name, genre_description,
	director_name, director_bio, director_birth, director_death, image_path, featured`

func (db *Postgres) CreateMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	query := `
		INSERT INTO movies (id, title, description, genre_name, genre_description,
			director_name, director_bio, director_birth, director_death, image_path, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + movieColumns
	row := db.Pool.QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre.Name,
		movie.Genre.Description,
		movie.Director.Name,
		movie.Director.Bio,
		movie.Director.Birth,
		movie.Director.Death,
		movie.ImagePath,
		movie.Featured,
	)
	return scanMovie(row)
}

func (db *Postgres) ListMovies(ctx context.Context) ([]model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY title`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *movie)
	}

	if list == nil {
		list = []model.Movie{}
	}
	return list, rows.Err()
}

func (db *Postgres) GetMovieByTitle(ctx context.Context, title string) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = $1`
	return scanMovie(db.Pool.QueryRow(ctx, query, title))
}

func (db *Postgres) GetMovieByGenre(ctx context.Context, genreName string) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE genre_name = $1 LIMIT 1`
	return scanMovie(db.Pool.QueryRow(ctx, query, genreName))
}

func (db *Postgres) GetMovieByDirector(ctx context.Context, directorName string) (*model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE director_name = $1 LIMIT 1`
	return scanMovie(db.Pool.QueryRow(ctx, query, directorName))
}

func scanMovie(row pgx.Row) (*model.Movie, error) {
	var movie model.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&movie.Director.Birth,
		&movie.Director.Death,
		&movie.ImagePath,
		&movie.Featured,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
