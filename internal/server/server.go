package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"profiles-feed-be/internal/cache"
	"profiles-feed-be/internal/config"
	"profiles-feed-be/internal/controllers"
	"profiles-feed-be/internal/middleware"
	"profiles-feed-be/internal/repository"
	"profiles-feed-be/internal/service"
)

// Repositories bundles the persistence backends the handlers run on.
type Repositories struct {
	Users  repository.UserRepository
	Tokens repository.TokenRepository
	Feed   repository.FeedRepository
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// NewRouter wires services, controllers and middleware into a gin engine.
// cacheClient may be nil.
func NewRouter(cfg *config.Config, repos Repositories, cacheClient cache.Cache) *gin.Engine {
	authService := service.NewAuthService(repos.Users, repos.Tokens, cacheClient, cfg.TokenCacheTTL, cfg.MinPasswordLength)
	userService := service.NewUserService(repos.Users, cfg.MinPasswordLength)
	feedService := service.NewFeedService(repos.Feed)

	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	feedController := controllers.NewFeedController(feedService)
	qrcodeController := controllers.NewQRCodeController(feedService, cfg.FrontendURL)

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Signup and token issuance with stricter rate limiting
	users := router.Group("/users")
	users.Use(generalRateLimiter.LimitMiddleware())
	{
		users.POST("/create", authRateLimiter.LimitMiddleware(), authController.CreateUser)
		users.POST("/token", authRateLimiter.LimitMiddleware(), authController.CreateToken)

		me := users.Group("/me")
		me.Use(middleware.AuthMiddleware(authService))
		{
			me.GET("", userController.GetMe)
			me.PUT("", userController.ReplaceMe)
			me.PATCH("", userController.UpdateMe)
		}
	}

	// Protected routes - every feed operation is scoped to the token's user
	feed := router.Group("/feed")
	feed.Use(generalRateLimiter.LimitMiddleware(), middleware.AuthMiddleware(authService))
	{
		feed.GET("/items", feedController.ListItems)
		feed.POST("/items", feedController.CreateItem)
		feed.GET("/items/:id", feedController.GetItem)
		feed.PUT("/items/:id", feedController.ReplaceItem)
		feed.PATCH("/items/:id", feedController.UpdateItem)
		feed.DELETE("/items/:id", feedController.DeleteItem)
		feed.GET("/items/:id/qrcode", qrcodeController.GenerateQRCode)
	}

	return router
}

// New creates an HTTP server for handler bound to the configured address.
func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		inner: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
