package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movievault/backend/internal/model"
	"github.com/movievault/backend/internal/service"
)

type MovieHandler struct {
	svc *service.MovieService
}

func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// GetMovies godoc
// @Summary List all movies
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Movie
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) GetMovies(c *gin.Context) {
	movies, err := h.svc.ListMovies(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// CreateMovie godoc
// @Summary Add a movie to the catalog
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateMovieRequest true "Movie fields"
// @Success 201 {object} model.Movie
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ValidationErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *gin.Context) {
	var req model.CreateMovieRequest
	if !bindJSON(c, &req) {
		return
	}

	movie, err := h.svc.CreateMovie(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// GetMovie godoc
// @Summary Get a movie by title
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param title path string true "Movie title"
// @Success 200 {object} model.Movie
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /movies/{title} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.svc.GetMovieByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// GetGenre godoc
// @Summary Get a genre by name
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genreName path string true "Genre name"
// @Success 200 {object} model.Genre
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /movies/genre/{genreName} [get]
func (h *MovieHandler) GetGenre(c *gin.Context) {
	genre, err := h.svc.GetGenre(c.Request.Context(), c.Param("genreName"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GetDirector godoc
// @Summary Get a director by name
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param directorName path string true "Director name"
// @Success 200 {object} model.Director
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /movies/directors/{directorName} [get]
func (h *MovieHandler) GetDirector(c *gin.Context) {
	director, err := h.svc.GetDirector(c.Request.Context(), c.Param("directorName"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, director)
}
