package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Writers != 1 {
		t.Errorf("expected 1 writer, got %d", cfg.Writers)
	}
	if cfg.Game.StartingBalance != 100 || cfg.Game.WorkCooldown != time.Minute {
		t.Errorf("unexpected game defaults: %+v", cfg.Game)
	}
	if cfg.Game.WorkRewardMin != 50 || cfg.Game.WorkRewardMax != 200 {
		t.Errorf("unexpected reward range: %+v", cfg.Game)
	}
	if cfg.Store.Driver != DriverFile || cfg.Store.File != "data/users.json" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Store.Mongo.Database != "tycoon" {
		t.Errorf("unexpected mongo db: %s", cfg.Store.Mongo.Database)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":          "9090",
		"WRITERS":       "4",
		"WORK_COOLDOWN": "30s",
		"STORE_DRIVER":  "redis",
		"REDIS_ADDR":    "cache:6380",
		"REDIS_DB":      "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Writers != 4 || cfg.Game.WorkCooldown != 30*time.Second {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Store.Driver != DriverRedis || cfg.Store.Redis.Addr != "cache:6380" || cfg.Store.Redis.DB != 2 {
		t.Errorf("unexpected redis config: %+v", cfg.Store.Redis)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "cassandra"}, "unknown STORE_DRIVER"},
		{"zero writers", map[string]string{"WRITERS": "0"}, "WRITERS"},
		{"reward range", map[string]string{"WORK_REWARD_MIN": "300"}, "WORK_REWARD_MIN"},
		{"production secret", map[string]string{"ENV": "production"}, "JWT_SECRET"},
		{"bad duration", map[string]string{"WORK_COOLDOWN": "soon"}, "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
