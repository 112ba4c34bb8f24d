package ports

import (
	"context"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	// Login verifies credentials and returns a signed bearer token with the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, username string) (*UserView, error)
}

// UserView is a user without credentials plus the income waiting to be collected.
type UserView struct {
	User          *domain.User
	PendingIncome int64
}
