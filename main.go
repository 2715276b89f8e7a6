package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/config"
	"github.com/gagan0803/cook-proj/internal/database"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/server"
	"github.com/gagan0803/cook-proj/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	catalogStore, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		slog.Error("opening recipe catalog", "error", err)
		os.Exit(1)
	}
	defer catalogStore.Close()

	ctx := context.Background()
	if seeded, err := catalogStore.SeedIfEmpty(ctx); err != nil {
		slog.Error("seeding recipe catalog", "error", err)
		os.Exit(1)
	} else if seeded > 0 {
		slog.Info("seeded recipe catalog", "recipes", seeded)
	}

	userRepo := repository.NewUserRepository(db)
	authService, err := services.NewAuthService(ctx, cfg, userRepo)
	if err != nil {
		slog.Error("creating auth service", "error", err)
		os.Exit(1)
	}

	srv := server.New(db, catalogStore, cfg, authService)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})))
}
