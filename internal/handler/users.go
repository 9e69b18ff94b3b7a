package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/movievault/backend/internal/model"
	"github.com/movievault/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "New user fields"
// @Success 201 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Failure 422 {object} model.ValidationErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user profile
// @Description Renames never clobber another user; a rename to the same
// @Description name is a plain field update with no conflict check.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Current username"
// @Param request body model.UpdateUserRequest true "Updated fields"
// @Success 201 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ValidationErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /users/{username} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), c.Param("username"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /users/{username} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.DeleteUser(c.Request.Context(), username); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: fmt.Sprintf("%s was deleted.", username)})
}

// AddFavorite godoc
// @Summary Add a movie to a user's favorites
// @Description Idempotent; adding an already-present movie is a no-op.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param movieID path string true "Movie ID"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /users/{username}/movies/{movieID} [post]
func (h *UserHandler) AddFavorite(c *gin.Context) {
	user, err := h.svc.AddFavorite(c.Request.Context(), c.Param("username"), c.Param("movieID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RemoveFavorite godoc
// @Summary Remove a movie from a user's favorites
// @Description Idempotent; removing an absent movie is a no-op.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param movieID path string true "Movie ID"
// @Success 200 {object} model.User
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /users/{username}/movies/{movieID} [delete]
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	user, err := h.svc.RemoveFavorite(c.Request.Context(), c.Param("username"), c.Param("movieID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
