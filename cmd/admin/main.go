package main

import (
	"errors"
	"log"
	"os"

	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/config"
	"lemuel.com/eduspaceadmin/internal/logger"
	"lemuel.com/eduspaceadmin/internal/session"

	academicYearService "lemuel.com/eduspaceadmin/internal/modules/academicyear/service"
	authService "lemuel.com/eduspaceadmin/internal/modules/auth/service"
	promotionService "lemuel.com/eduspaceadmin/internal/modules/promotion/service"
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

	api := client.New(cfg.APIBaseURL, client.WithTimeout(cfg.HTTPTimeout))
	store := session.NewFileStore(cfg.CLISessionFile)

	cli := &commandLine{
		out:       os.Stdout,
		store:     store,
		auth:      authService.NewAuthService(api, store, cfg.SessionTTL, zl),
		years:     academicYearService.NewAcademicYearService(api, store, zl),
		promotion: promotionService.NewPromotionService(api, store, zl),
	}
	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		zl.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
