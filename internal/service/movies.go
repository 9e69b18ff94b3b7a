package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/movievault/backend/internal/db"
	"github.com/movievault/backend/internal/model"
)

type MovieService struct {
	repo *db.Postgres
}

func NewMovieService(repo *db.Postgres) *MovieService {
	return &MovieService{repo: repo}
}

func (s *MovieService) CreateMovie(ctx context.Context, req *model.CreateMovieRequest) (*model.Movie, error) {
	movie := &model.Movie{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Director:    req.Director,
		ImagePath:   req.ImagePath,
		Featured:    req.Featured,
	}

	created, err := s.repo.CreateMovie(ctx, movie)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: movie %s already exists", ErrConflict, req.Title)
		}
		return nil, err
	}
	return created, nil
}

func (s *MovieService) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.repo.ListMovies(ctx)
}

func (s *MovieService) GetMovieByTitle(ctx context.Context, title string) (*model.Movie, error) {
	movie, err := s.repo.GetMovieByTitle(ctx, title)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: movie %s", ErrNotFound, title)
		}
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) GetGenre(ctx context.Context, genreName string) (*model.Genre, error) {
	movie, err := s.repo.GetMovieByGenre(ctx, genreName)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: genre %s", ErrNotFound, genreName)
		}
		return nil, err
	}
	return &movie.Genre, nil
}

func (s *MovieService) GetDirector(ctx context.Context, directorName string) (*model.Director, error) {
	movie, err := s.repo.GetMovieByDirector(ctx, directorName)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: director %s", ErrNotFound, directorName)
		}
		return nil, err
	}
	return &movie.Director, nil
}
