package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/cache"
	"github.com/ideaboard/ideaboard-api/internal/config"
	"github.com/ideaboard/ideaboard-api/internal/database"
	"github.com/ideaboard/ideaboard-api/internal/handlers"
	"github.com/ideaboard/ideaboard-api/internal/services"
	"github.com/ideaboard/ideaboard-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Image host: MinIO when configured, otherwise files served from STATIC_DIR
	var uploader storage.Uploader
	if cfg.MinioEndpoint != "" {
		minioUploader, err := storage.NewMinioUploader(cfg)
		if err != nil {
			log.Fatalf("Failed to create MinIO client: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = minioUploader.EnsureBucket(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare MinIO bucket: %v", err)
		}
		uploader = minioUploader
	} else {
		uploader = storage.NewDiskUploader(filepath.Join(cfg.StaticDir, "images"), "/static/images")
		r.Static("/static", cfg.StaticDir)
		log.Println("MINIO_ENDPOINT not set, storing images on local disk")
	}

	// Statistics cache is optional
	var statsCache services.StatsCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.StatsCacheTTL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		statsCache = redisCache
	}

	handlers.SetupRouter(r, cfg, db, uploader, statsCache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
