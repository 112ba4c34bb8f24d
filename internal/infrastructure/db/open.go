// Package db selects and opens the configured user store.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/core/ports"
	"github.com/99minutos/tycoon-api/internal/infrastructure/config"
	"github.com/99minutos/tycoon-api/internal/infrastructure/db/filestore"
	"github.com/99minutos/tycoon-api/internal/infrastructure/db/mongo"
	"github.com/99minutos/tycoon-api/internal/infrastructure/db/redis"
	"github.com/99minutos/tycoon-api/internal/infrastructure/db/sqlite"
	"github.com/99minutos/tycoon-api/internal/pkg/clock"
)

// CloseFunc releases the resources held by a store.
type CloseFunc func(context.Context) error

func noopClose(context.Context) error { return nil }

// Open returns the user repository for cfg.Driver. clk stamps write times on
// stores that record them.
func Open(ctx context.Context, cfg config.StoreConfig, clk clock.Clock, log zerolog.Logger) (ports.UserRepository, CloseFunc, error) {
	driver := strings.ToLower(cfg.Driver)
	log = log.With().Str("store", driver).Logger()

	switch driver {
	case config.DriverFile:
		s, err := filestore.Open(cfg.File, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.File).Msg("user store opened")
		return s, noopClose, nil

	case config.DriverMongo:
		repo, err := mongo.Open(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Clock:    clk,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("user store opened")
		return repo, repo.Close, nil

	case config.DriverRedis:
		repo, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("user store opened")
		return repo, func(context.Context) error { return repo.Close() }, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLite.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dsn", cfg.SQLite.DSN).Msg("user store opened")
		return s, func(context.Context) error { return s.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
