package model

import "time"

type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	PasswordHash   string     `json:"-"`
	Email          string     `json:"email"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []string   `json:"favoriteMovies"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type RegisterRequest struct {
	Username       string   `json:"username" binding:"required,alphanum,min=5"`
	Password       string   `json:"password" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Birthday       *string  `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	FavoriteMovies []string `json:"favoriteMovies"`
}

type UpdateUserRequest struct {
	Username       string   `json:"username" binding:"required,alphanum,min=5"`
	Password       string   `json:"password" binding:"omitempty,min=8"`
	Email          string   `json:"email" binding:"required,email"`
	Birthday       *string  `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	FavoriteMovies []string `json:"favoriteMovies"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
