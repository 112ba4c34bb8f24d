// @title        Tycoon API
// @version      1.0
// @description  Idle business game backend.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/api"
	"github.com/99minutos/tycoon-api/internal/core/service"
	"github.com/99minutos/tycoon-api/internal/infrastructure/catalog"
	"github.com/99minutos/tycoon-api/internal/infrastructure/config"
	"github.com/99minutos/tycoon-api/internal/infrastructure/db"
	"github.com/99minutos/tycoon-api/internal/infrastructure/queue"
	"github.com/99minutos/tycoon-api/internal/pkg/clock"
	"github.com/99minutos/tycoon-api/pkg/logger"
)

const (
	devJWTSecret        = "dev-only-insecure-secret"
	shutdownGracePeriod = 10 * time.Second
)

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "tycoon-api"})
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tycoon-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = devJWTSecret
	}

	businesses, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	log.Info().Int("businesses", businesses.Len()).Str("file", cfg.CatalogFile).Msg("catalog loaded")

	clk := clock.RealClock{}
	store, closeStore, err := db.Open(ctx, cfg.Store, clk, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := closeStore(closeCtx); err != nil {
			log.Error().Err(err).Msg("error closing store")
		}
	}()

	// The writer outlives in-flight requests; it stops after the server does.
	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()
	writer := queue.NewDispatcher(cfg.Writers, logger.Component("writer"))
	writer.Start(writerCtx)

	authService := service.NewAuthService(store, writer, businesses, clk, service.AuthConfig{
		JWTSecret:       cfg.JWTSecret,
		TokenTTL:        cfg.TokenTTL,
		StartingBalance: cfg.Game.StartingBalance,
	}, logger.Component("auth"))
	gameService := service.NewGameService(store, writer, businesses, clk, service.GameConfig{
		WorkCooldown:  cfg.Game.WorkCooldown,
		WorkRewardMin: cfg.Game.WorkRewardMin,
		WorkRewardMax: cfg.Game.WorkRewardMax,
	}, logger.Component("game"))

	e := api.NewRouter(api.RouterDeps{
		Auth:         authService,
		Game:         gameService,
		Store:        store,
		JWTSecret:    cfg.JWTSecret,
		RateLimitRPS: cfg.RateLimitRPS,
		Logger:       logger.Component("http"),
	})

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Int("writers", cfg.Writers).Msg("tycoon api starting")
		serverErrors <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful server shutdown failed")
		_ = e.Close()
	}

	log.Info().Msg("tycoon api stopped")
	return nil
}
