package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/scribehub/scribehub-api/docs"
	"github.com/scribehub/scribehub-api/internal/api/handler"
	"github.com/scribehub/scribehub-api/internal/api/middleware"
	"github.com/scribehub/scribehub-api/internal/core/service"
	mongodb "github.com/scribehub/scribehub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/scribehub/scribehub-api/internal/infrastructure/db/redis"
	"github.com/scribehub/scribehub-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("scribehub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	authorRepo := mongodb.NewAuthorRepository(db)
	genreRepo := mongodb.NewGenreRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	tokenStore := redisdb.NewRefreshTokenStore(rdb)

	userService := service.NewUserService(userRepo, postRepo, tokenStore,
		cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, cfg.BcryptCost, log)
	postService := service.NewPostService(postRepo, log)
	libraryService := service.NewLibraryService(authorRepo, genreRepo, bookRepo, log)
	taskService := service.NewTaskService(taskRepo, log)

	authHandler := handler.NewAuthHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	libraryHandler := handler.NewLibraryHandler(libraryService)
	taskHandler := handler.NewTaskHandler(taskService)

	requireAuth := middleware.Auth(cfg.JWTSecret, userRepo)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret, userRepo)

	// --- User routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/change-password", authHandler.ChangePassword, requireAuth)
	e.POST("/deactivate", authHandler.Deactivate, requireAuth)
	e.PATCH("/user-update", authHandler.UpdateUser, requireAuth)

	// --- Blog routes: public reads, author-only writes ---
	e.GET("/posts", postHandler.List, optionalAuth)
	e.GET("/posts/:id", postHandler.Get, optionalAuth)
	e.POST("/posts", postHandler.Create, requireAuth)
	e.PUT("/posts/:id", postHandler.Update, requireAuth)
	e.PATCH("/posts/:id", postHandler.Update, requireAuth)
	e.DELETE("/posts/:id", postHandler.Delete, requireAuth)

	// --- Library routes: public reads, authenticated writes, no delete ---
	e.GET("/authors", libraryHandler.ListAuthors, optionalAuth)
	e.GET("/authors/:id", libraryHandler.GetAuthor, optionalAuth)
	e.POST("/authors", libraryHandler.CreateAuthor, requireAuth)
	e.PUT("/authors/:id", libraryHandler.UpdateAuthor, requireAuth)
	e.PATCH("/authors/:id", libraryHandler.UpdateAuthor, requireAuth)

	e.GET("/genres", libraryHandler.ListGenres, optionalAuth)
	e.GET("/genres/:id", libraryHandler.GetGenre, optionalAuth)
	e.POST("/genres", libraryHandler.CreateGenre, requireAuth)
	e.PUT("/genres/:id", libraryHandler.UpdateGenre, requireAuth)
	e.PATCH("/genres/:id", libraryHandler.UpdateGenre, requireAuth)

	e.GET("/books", libraryHandler.ListBooks, optionalAuth)
	e.GET("/books/:id", libraryHandler.GetBook, optionalAuth)
	e.POST("/books", libraryHandler.CreateBook, requireAuth)
	e.PUT("/books/:id", libraryHandler.UpdateBook, requireAuth)
	e.PATCH("/books/:id", libraryHandler.UpdateBook, requireAuth)

	// --- Task routes: fully private, owner-scoped lookups ---
	tasks := e.Group("/tasks", requireAuth)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
