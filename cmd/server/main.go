package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/config"
	"lemuel.com/eduspaceadmin/internal/logger"
	"lemuel.com/eduspaceadmin/internal/server"
	"lemuel.com/eduspaceadmin/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv := server.NewServer(cfg, zl, redisClient)

	zl.Info("console listening",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.APIBaseURL),
		zap.Bool("redis", redisClient != nil),
	)
	if err := srv.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
}
