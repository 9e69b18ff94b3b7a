package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/movievault/backend/internal/model"
	"github.com/movievault/backend/internal/service"
)

// bindJSON decodes and validates the request body. Binding-tag failures
// become a 422 with one entry per offending field; anything else (broken
// JSON) is a plain 400. Returns false when a response was written.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]model.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, model.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, model.ValidationErrorResponse{Errors: fields})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "alphanum":
		return "may only contain letters and numbers"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "does not appear to be a valid email"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// writeServiceError maps service sentinels onto the HTTP contract. Not
// found and conflict both answer 400, matching what existing clients of
// this API expect. Storage faults stay generic.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
