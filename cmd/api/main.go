// Fitlog: local API for a workout tracker. Keeps user settings and the
// workout log in a key-value store (memory, postgres or redis).
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/limbo/fitlog/internal/api"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/repository"
	"github.com/limbo/fitlog/internal/service"
	"github.com/limbo/fitlog/pkg/cleanup"
	"github.com/limbo/fitlog/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	setupLogger(cfg.GetStringOr("LOG_LEVEL", "info"))

	store, err := repository.NewStore(&repository.StoreOptions{
		Driver: cfg.GetStringOr("STORAGE_DRIVER", repository.DriverMemory),
		Postgres: &repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		},
		Redis: &repository.RedisCfg{
			Address:  cfg.GetStringOr("REDIS_ADDRESS", "localhost:6379"),
			Password: cfg.GetString("REDIS_PASSWORD"),
			Prefix:   cfg.GetString("REDIS_PREFIX"),
		},
	})
	if err != nil {
		log.Fatal("creating storage error: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settingsService := service.NewSettingsService(store)
	if err = settingsService.Load(ctx); err != nil && !errors.Is(err, errorvalues.ErrKeyNotFound) {
		slog.Warn("starting with default settings", slog.String("error", err.Error()))
	}
	workoutService := service.NewWorkoutService(store)
	if _, err = workoutService.Load(ctx); err != nil && !errors.Is(err, errorvalues.ErrKeyNotFound) {
		slog.Warn("starting with empty workout log", slog.String("error", err.Error()))
	}

	serv := api.New(&api.ServicesList{
		SettingsService: settingsService,
		WorkoutService:  workoutService,
	})
	err = serv.Run(ctx, cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	if err = cleanup.CleanUp(); err != nil {
		log.Println("Cleanup error: " + err.Error())
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
