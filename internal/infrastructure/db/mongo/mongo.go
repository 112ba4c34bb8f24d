package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/99minutos/tycoon-api/internal/pkg/clock"
)

const defaultTimeout = 10 * time.Second

// Config holds the MongoDB settings of the user store.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and each repository call. Zero means 10s.
	Timeout time.Duration
	// Clock stamps updated_at on every write. Nil means the system clock.
	Clock clock.Clock
}

// Open connects to cfg.URI and returns the user repository of cfg.Database.
// The primary must answer a ping before Open returns.
func Open(ctx context.Context, cfg Config) (*UserRepository, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("tycoon-api").
		SetServerSelectionTimeout(cfg.Timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	return NewUserRepository(client.Database(cfg.Database), cfg.Clock), nil
}

// Close disconnects the client behind the repository.
func (r *UserRepository) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}
