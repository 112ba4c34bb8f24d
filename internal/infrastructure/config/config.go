package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers understood by STORE_DRIVER.
const (
	DriverFile   = "file"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	CatalogFile  string  `env:"CATALOG_FILE"`
	Writers      int     `env:"WRITERS,        default=1"`
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS, default=20"`

	Game  GameConfig
	Store StoreConfig
}

type GameConfig struct {
	StartingBalance int64         `env:"STARTING_BALANCE, default=100"`
	WorkCooldown    time.Duration `env:"WORK_COOLDOWN,    default=60s"`
	WorkRewardMin   int64         `env:"WORK_REWARD_MIN,  default=50"`
	WorkRewardMax   int64         `env:"WORK_REWARD_MAX,  default=200"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=file"`
	File   string `env:"STORE_FILE,   default=data/users.json"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tycoon"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN, default=file:data/tycoon.db"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether ENV is set to production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Validate rejects combinations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Writers < 1 {
		errs = append(errs, errors.New("WRITERS must be at least 1"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.Game.StartingBalance < 0 {
		errs = append(errs, errors.New("STARTING_BALANCE must not be negative"))
	}
	if c.Game.WorkCooldown < 0 {
		errs = append(errs, errors.New("WORK_COOLDOWN must not be negative"))
	}
	if c.Game.WorkRewardMin < 0 || c.Game.WorkRewardMax < c.Game.WorkRewardMin {
		errs = append(errs, errors.New("WORK_REWARD_MIN and WORK_REWARD_MAX must satisfy 0 <= min <= max"))
	}

	switch strings.ToLower(c.Store.Driver) {
	case DriverFile:
		if c.Store.File == "" {
			errs = append(errs, errors.New("STORE_FILE is required for the file driver"))
		}
	case DriverMongo, DriverRedis, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
