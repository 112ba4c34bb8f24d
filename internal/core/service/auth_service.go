package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/tycoon-api/internal/core/domain"
	"github.com/99minutos/tycoon-api/internal/core/ports"
	"github.com/99minutos/tycoon-api/internal/pkg/clock"
)

const (
	maxUsernameLength = 64
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// AuthConfig holds the tunables of AuthService.
type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	StartingBalance int64
	BcryptCost      int
}

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo    ports.UserRepository
	writer  ports.Serializer
	catalog domain.Catalog
	clock   clock.Clock
	cfg     AuthConfig
	log     zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	writer ports.Serializer,
	catalog domain.Catalog,
	clk clock.Clock,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.StartingBalance < 0 {
		cfg.StartingBalance = domain.DefaultStartingBalance
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, writer: writer, catalog: catalog, clock: clk, cfg: cfg, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password must not be empty", domain.ErrValidation)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be at most %d characters", domain.ErrValidation, maxUsernameLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Balance:      s.cfg.StartingBalance,
		Businesses:   []domain.OwnedBusiness{},
	}

	err = s.writer.Do(ctx, username, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, user, nil
}

// GetUser returns the user together with the income a collect call would
// credit right now. It never mutates the record.
func (s *AuthService) GetUser(ctx context.Context, username string) (*ports.UserView, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	pending, _ := domain.Accrue(s.catalog, user.Businesses, s.clock.Now().Unix())
	return &ports.UserView{User: user, PendingIncome: pending}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":      user.Key(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}
