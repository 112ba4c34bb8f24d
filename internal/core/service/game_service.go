package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/core/domain"
	"github.com/99minutos/tycoon-api/internal/core/ports"
	"github.com/99minutos/tycoon-api/internal/pkg/clock"
)

// GameConfig holds the rules of the work action.
type GameConfig struct {
	WorkCooldown  time.Duration
	WorkRewardMin int64
	WorkRewardMax int64
}

// DefaultGameConfig returns the reference rules: one work action per minute
// paying between 50 and 200 inclusive.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		WorkCooldown:  60 * time.Second,
		WorkRewardMin: 50,
		WorkRewardMax: 200,
	}
}

// GameService implements the player actions. Every mutation runs inside the
// serializer under the player's username, reads the current record, and
// writes back a modified copy; nothing is written when a check fails.
type GameService struct {
	repo    ports.UserRepository
	writer  ports.Serializer
	catalog domain.Catalog
	clock   clock.Clock
	rand    RandomSource
	cfg     GameConfig
	log     zerolog.Logger
}

func NewGameService(
	repo ports.UserRepository,
	writer ports.Serializer,
	catalog domain.Catalog,
	clk clock.Clock,
	cfg GameConfig,
	log zerolog.Logger,
) *GameService {
	if cfg.WorkRewardMax < cfg.WorkRewardMin {
		cfg.WorkRewardMin, cfg.WorkRewardMax = cfg.WorkRewardMax, cfg.WorkRewardMin
	}
	return &GameService{
		repo:    repo,
		writer:  writer,
		catalog: catalog,
		clock:   clk,
		rand:    globalRand{},
		cfg:     cfg,
		log:     log,
	}
}

// WithRandom replaces the reward generator.
func (s *GameService) WithRandom(r RandomSource) *GameService {
	s.rand = r
	return s
}

// Businesses returns the purchasable catalog.
func (s *GameService) Businesses() []domain.BusinessDefinition {
	return s.catalog.List()
}

// Work pays a random reward if the cooldown since the last work has elapsed.
func (s *GameService) Work(ctx context.Context, username string) (*ports.WorkResult, error) {
	var res *ports.WorkResult
	err := s.writer.Do(ctx, username, func(ctx context.Context) error {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		now := s.clock.Now().Unix()
		elapsed := time.Duration(now-user.LastWorkTime) * time.Second
		if elapsed < s.cfg.WorkCooldown {
			return &domain.CooldownError{Remaining: s.cfg.WorkCooldown - elapsed}
		}

		earned := s.cfg.WorkRewardMin + s.rand.Int64N(s.cfg.WorkRewardMax-s.cfg.WorkRewardMin+1)

		updated := user.Clone()
		updated.Balance += earned
		updated.LastWorkTime = now
		if err := s.repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		res = &ports.WorkResult{Earned: earned, NewBalance: updated.Balance, LastWorkTime: now}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("work: %w", err)
	}

	s.log.Info().
		Str("username", username).
		Int64("earned", res.Earned).
		Int64("balance", res.NewBalance).
		Msg("work paid")
	return res, nil
}

// BuyBusiness debits the cost of a catalog business and attaches it to the
// user with its accrual checkpoint set to now.
func (s *GameService) BuyBusiness(ctx context.Context, username string, businessID int64) (*ports.PurchaseResult, error) {
	var res *ports.PurchaseResult
	err := s.writer.Do(ctx, username, func(ctx context.Context) error {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		def, ok := s.catalog.Lookup(businessID)
		if !ok {
			return domain.ErrUnknownBusiness
		}
		if user.Owns(businessID) {
			return domain.ErrAlreadyOwned
		}
		if user.Balance < def.Cost {
			return domain.ErrInsufficientFunds
		}

		now := s.clock.Now().Unix()
		owned := domain.OwnedBusiness{
			ID:                 def.ID,
			PurchaseTime:       now,
			LastCollectionTime: now,
		}

		updated := user.Clone()
		updated.Balance -= def.Cost
		updated.Businesses = append(updated.Businesses, owned)
		if err := s.repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		res = &ports.PurchaseResult{Business: def, NewBalance: updated.Balance, NewBusiness: owned}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("buy business %d: %w", businessID, err)
	}

	s.log.Info().
		Str("username", username).
		Int64("business_id", businessID).
		Int64("balance", res.NewBalance).
		Msg("business bought")
	return res, nil
}

// CollectIncome credits the income every owned business accrued since its
// checkpoint. Returns domain.ErrNothingToCollect, without writing, when no
// business has produced a whole unit yet.
func (s *GameService) CollectIncome(ctx context.Context, username string) (*ports.CollectResult, error) {
	var res *ports.CollectResult
	err := s.writer.Do(ctx, username, func(ctx context.Context) error {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}

		total, businesses := domain.Accrue(s.catalog, user.Businesses, s.clock.Now().Unix())
		if total <= 0 {
			return domain.ErrNothingToCollect
		}

		updated := user.Clone()
		updated.Balance = domain.SaturatingAdd(updated.Balance, total)
		updated.Businesses = businesses
		if err := s.repo.Update(ctx, updated); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		res = &ports.CollectResult{Collected: total, NewBalance: updated.Balance, UpdatedBusinesses: businesses}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect income: %w", err)
	}

	s.log.Info().
		Str("username", username).
		Int64("collected", res.Collected).
		Int64("balance", res.NewBalance).
		Msg("income collected")
	return res, nil
}
