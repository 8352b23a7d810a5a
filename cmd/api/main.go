package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pantrysnap/backend/config"
	"github.com/pantrysnap/backend/internal/api"
	"github.com/pantrysnap/backend/internal/database"
	"github.com/pantrysnap/backend/internal/logger"
	"github.com/pantrysnap/backend/internal/server"
	"github.com/pantrysnap/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis is optional: without it scans are unthrottled and the
	// candidate pool is read from the database every time.
	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		zlog.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		rdb = nil
	}

	storage, err := config.NewS3Config(context.Background())
	if err != nil {
		zlog.Warn("S3 unavailable, scan images will not be stored", zap.Error(err))
		storage = nil
	}

	classifier := service.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout, zlog)

	srv := server.New(api.Deps{
		DB:         db,
		Redis:      rdb,
		Classifier: classifier,
		Storage:    storage,
		Config:     cfg,
		Logger:     zlog,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zlog.Error("shutdown error", zap.Error(err))
	}
}
