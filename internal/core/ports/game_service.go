package ports

import (
	"context"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// WorkResult is returned by a successful work action.
type WorkResult struct {
	Earned       int64
	NewBalance   int64
	LastWorkTime int64
}

// PurchaseResult is returned by a successful purchase.
type PurchaseResult struct {
	Business    domain.BusinessDefinition
	NewBalance  int64
	NewBusiness domain.OwnedBusiness
}

// CollectResult is returned when income was collected.
type CollectResult struct {
	Collected         int64
	NewBalance        int64
	UpdatedBusinesses []domain.OwnedBusiness
}

// GameService defines the game actions available to a player.
type GameService interface {
	Businesses() []domain.BusinessDefinition
	Work(ctx context.Context, username string) (*WorkResult, error)
	BuyBusiness(ctx context.Context, username string, businessID int64) (*PurchaseResult, error)
	CollectIncome(ctx context.Context, username string) (*CollectResult, error)
}

// Serializer runs fn with exclusive access to the record identified by key.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
