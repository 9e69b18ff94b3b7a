package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/movievault/backend/internal/config"
	"github.com/movievault/backend/internal/db"
	"github.com/movievault/backend/internal/handler"
	"github.com/movievault/backend/internal/service"
)

// @title Movie Vault API
// @version 1.0
// @description Movie catalog and user favorites service with bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	repo, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("postgres init failed: %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema init failed: %v", err)
	}

	authSvc, err := service.NewAuthService(repo, cfg.Auth)
	if err != nil {
		log.Fatalf("auth init failed: %v", err)
	}
	userSvc := service.NewUserService(repo)
	movieSvc := service.NewMovieService(repo)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	movieHandler := handler.NewMovieHandler(movieSvc)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.CORS.AllowedOrigins, ","), true))

	// 공개 엔드포인트
	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)
	router.POST("/users", userHandler.Register)
	router.POST("/login", authHandler.Login)

	// 토큰이 필요한 엔드포인트
	protected := router.Group("")
	protected.Use(handler.AuthMiddleware(authSvc))
	{
		protected.GET("/users", userHandler.GetUsers)
		protected.GET("/users/:username", userHandler.GetUser)
		protected.PUT("/users/:username", userHandler.UpdateUser)
		protected.DELETE("/users/:username", userHandler.DeleteUser)
		protected.POST("/users/:username/movies/:movieID", userHandler.AddFavorite)
		protected.DELETE("/users/:username/movies/:movieID", userHandler.RemoveFavorite)

		protected.GET("/movies", movieHandler.GetMovies)
		protected.POST("/movies", movieHandler.CreateMovie)
		protected.GET("/movies/:title", movieHandler.GetMovie)
		protected.GET("/movies/genre/:genreName", movieHandler.GetGenre)
		protected.GET("/movies/directors/:directorName", movieHandler.GetDirector)
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
