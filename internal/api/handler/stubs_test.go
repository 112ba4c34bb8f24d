package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/core/domain"
	"github.com/99minutos/tycoon-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) error
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	getUserFn  func(ctx context.Context, username string) (*ports.UserView, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) error {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) GetUser(ctx context.Context, username string) (*ports.UserView, error) {
	return s.getUserFn(ctx, username)
}

type stubGameService struct {
	workFn    func(ctx context.Context, username string) (*ports.WorkResult, error)
	buyFn     func(ctx context.Context, username string, id int64) (*ports.PurchaseResult, error)
	collectFn func(ctx context.Context, username string) (*ports.CollectResult, error)
}

func (s *stubGameService) Businesses() []domain.BusinessDefinition {
	return domain.DefaultBusinesses()
}

func (s *stubGameService) Work(ctx context.Context, username string) (*ports.WorkResult, error) {
	return s.workFn(ctx, username)
}

func (s *stubGameService) BuyBusiness(ctx context.Context, username string, id int64) (*ports.PurchaseResult, error) {
	return s.buyFn(ctx, username, id)
}

func (s *stubGameService) CollectIncome(ctx context.Context, username string) (*ports.CollectResult, error) {
	return s.collectFn(ctx, username)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newTestHandler(auth *stubAuthService, game *stubGameService) *GameHandler {
	if auth == nil {
		auth = &stubAuthService{}
	}
	if game == nil {
		game = &stubGameService{}
	}
	return NewGameHandler(auth, game, zerolog.Nop())
}
