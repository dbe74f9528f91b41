package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"profiles-feed-be/internal/cache"
	"profiles-feed-be/internal/config"
	"profiles-feed-be/internal/database"
	"profiles-feed-be/internal/repository"
	"profiles-feed-be/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	var repos server.Repositories
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL is not set. Using the in-memory store; data is lost on exit.")
		store := repository.NewMemoryStore()
		repos = server.Repositories{Users: store.Users(), Tokens: store.Tokens(), Feed: store.Feed()}
	} else {
		db, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		repos = server.Repositories{
			Users:  repository.NewUserRepository(db),
			Tokens: repository.NewTokenRepository(db),
			Feed:   repository.NewFeedRepository(db),
		}
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		} else {
			log.Println("Connected to Redis cache")
			cacheClient = c
			defer c.Close()
		}
	}

	srv := server.New(cfg, server.NewRouter(cfg, repos, cacheClient))

	go func() {
		log.Printf("Server starting on %s", cfg.Addr())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
