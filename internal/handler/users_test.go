package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/movievault/backend/internal/config"
	"github.com/movievault/backend/internal/model"
	"github.com/movievault/backend/internal/service"
)

func TestRegisterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.UserService
	r.POST("/users", NewUserHandler(svc).Register)

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"al","password":"Secret123","email":"a@example.com"}`},
		{"non-alphanumeric username", `{"username":"alice!","password":"Secret123","email":"a@example.com"}`},
		{"missing password", `{"username":"alice1","email":"a@example.com"}`},
		{"bad email", `{"username":"alice1","password":"Secret123","email":"nope"}`},
		{"bad birthday", `{"username":"alice1","password":"Secret123","email":"a@example.com","birthday":"June 1st"}`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tc.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", tc.name, w.Code)
		}
		var resp model.ValidationErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: bad body: %v", tc.name, err)
		}
		if len(resp.Errors) == 0 {
			t.Fatalf("%s: expected field errors", tc.name)
		}
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	directory := newFakeDirectory()
	authSvc, err := service.NewAuthService(directory, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  "168h",
	})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	userSvc := service.NewUserService(directory)

	authHandler := NewAuthHandler(authSvc)
	userHandler := NewUserHandler(userSvc)

	r := gin.New()
	r.POST("/users", userHandler.Register)
	r.POST("/login", authHandler.Login)

	protected := r.Group("")
	protected.Use(AuthMiddleware(authSvc))
	{
		protected.GET("/users", userHandler.GetUsers)
		protected.GET("/users/:username", userHandler.GetUser)
		protected.PUT("/users/:username", userHandler.UpdateUser)
		protected.DELETE("/users/:username", userHandler.DeleteUser)
		protected.POST("/users/:username/movies/:movieID", userHandler.AddFavorite)
		protected.DELETE("/users/:username/movies/:movieID", userHandler.RemoveFavorite)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUserLifecycle(t *testing.T) {
	r := newTestRouter(t)

	// Register.
	w := doJSON(r, http.MethodPost, "/users", "", `{"username":"alice1","password":"Secret123","email":"alice@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "Secret123") {
		t.Fatal("register response must not echo the plaintext password")
	}
	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Fatal("register response must not expose the digest")
	}

	// Duplicate registration.
	w = doJSON(r, http.MethodPost, "/users", "", `{"username":"alice1","password":"Secret123","email":"alice@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", w.Code)
	}

	// Login with bad password.
	w = doJSON(r, http.MethodPost, "/login", "", `{"username":"alice1","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	// Login.
	w = doJSON(r, http.MethodPost, "/login", "", `{"username":"alice1","password":"Secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var login model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("login body: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login must return a token")
	}
	token := login.Token

	// Protected route without a token.
	w = doJSON(r, http.MethodGet, "/users/alice1", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", w.Code)
	}

	// No-op rename must not conflict.
	w = doJSON(r, http.MethodPut, "/users/alice1", token, `{"username":"alice1","email":"alice@example.com"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("noop rename: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	// Favorites: add twice, one occurrence.
	for i := 0; i < 2; i++ {
		w = doJSON(r, http.MethodPost, "/users/alice1/movies/M1", token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("add favorite #%d: expected 200, got %d", i+1, w.Code)
		}
	}
	var user model.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("favorite body: %v", err)
	}
	if len(user.FavoriteMovies) != 1 || user.FavoriteMovies[0] != "M1" {
		t.Fatalf("expected favorites [M1], got %v", user.FavoriteMovies)
	}

	// Favorites: remove twice, both fine.
	for i := 0; i < 2; i++ {
		w = doJSON(r, http.MethodDelete, "/users/alice1/movies/M1", token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("remove favorite #%d: expected 200, got %d", i+1, w.Code)
		}
	}
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("favorite body: %v", err)
	}
	if len(user.FavoriteMovies) != 0 {
		t.Fatalf("expected empty favorites, got %v", user.FavoriteMovies)
	}

	// Delete, then the old token stops working.
	w = doJSON(r, http.MethodDelete, "/users/alice1", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/users/alice1", token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("token of deleted user: expected 401, got %d", w.Code)
	}
}

func TestRenameConflict(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []string{
		`{"username":"alice1","password":"Secret123","email":"alice@example.com"}`,
		`{"username":"bobby1","password":"Secret123","email":"bobby@example.com"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/users", "", body); w.Code != http.StatusCreated {
			t.Fatalf("register: expected 201, got %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodPost, "/login", "", `{"username":"alice1","password":"Secret123"}`)
	var login model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("login body: %v", err)
	}

	w = doJSON(r, http.MethodPut, "/users/alice1", login.Token, `{"username":"bobby1","email":"alice@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("rename onto taken name: expected 400, got %d (%s)", w.Code, w.Body.String())
	}
}
