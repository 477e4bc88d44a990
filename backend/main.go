package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"cobropos/m/internal/api"
	"cobropos/m/internal/config"
	"cobropos/m/internal/database"
	"cobropos/m/internal/migrations"
	"cobropos/m/internal/sales"
	"cobropos/m/internal/seed"
	"cobropos/m/internal/store"
	"cobropos/m/internal/upload"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		logger.Fatalf("%v", err)
	}
	if cfg.SeedReset {
		if err := seed.Reset(db); err != nil {
			logger.Fatalf("reset failed: %v", err)
		}
		logger.Warn("database reset")
	}
	if cfg.SeedProductsCSV != "" {
		if _, err := seed.LoadProducts(db, cfg.SeedProductsCSV, logger); err != nil {
			logger.Errorf("unable to load product catalog: %v", err)
		}
	}

	ctx := context.Background()

	var locker sales.Locker = sales.NewLocalLocker()
	if cfg.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s unreachable, sales locks fall back to the database: %v", cfg.RedisAddress, err)
		}
		locker = sales.NewRedisLocker(rdb, logger)
	}

	var storage upload.Storage
	uploadDir := ""
	switch cfg.StorageProvider {
	case config.StorageProviderGCS:
		gcs, err := upload.NewGCSStorage(ctx, cfg.GCSBucket)
		if err != nil {
			logger.Fatalf("gcs storage: %v", err)
		}
		defer gcs.Close()
		storage = gcs
	default:
		storage = upload.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL+"/assets/img")
		uploadDir = cfg.UploadDir
	}

	st := store.New(db)
	salesSvc := sales.NewService(st, sales.Options{
		Locker:   locker,
		Location: cfg.SalesLocation(),
		Strict:   cfg.SalesStrict,
		Logger:   logger,
	})
	uploader := upload.NewUploader(storage, cfg.UploadMaxBytes, logger)

	handler := api.New(st, salesSvc, uploader, api.Options{
		Environment:    cfg.Environment,
		Secret:         cfg.Secret,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		UploadDir:      uploadDir,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.WithField("env", cfg.Environment).Infof("POS server starting on :%s", cfg.HTTPPort)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
