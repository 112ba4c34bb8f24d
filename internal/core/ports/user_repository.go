package ports

import (
	"context"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// UserRepository persists user records keyed by case-insensitive username.
// Implementations must return domain.ErrUserExists from Create when the key
// is taken and domain.ErrUserNotFound when a lookup or update misses.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update replaces the stored record identified by user.Key().
	Update(ctx context.Context, user *domain.User) error
	Ping(ctx context.Context) error
}
