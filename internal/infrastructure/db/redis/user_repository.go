package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// UserRepository stores each user as a JSON value.
// Key format: tycoon:user:<lower-cased username>
type UserRepository struct {
	client *redis.Client
}

// NewUserRepository creates a UserRepository wrapping the given Redis client.
func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

type redisUser struct {
	Username     string                 `json:"username"`
	PasswordHash string                 `json:"password_hash"`
	Balance      int64                  `json:"balance"`
	LastWorkTime int64                  `json:"last_work_time"`
	Businesses   []domain.OwnedBusiness `json:"businesses"`
}

// Create stores a new user with SETNX so the duplicate check is atomic.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, key(user.Username), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis create user: %w", err)
	}
	if !ok {
		return domain.ErrUserExists
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	data, err := r.client.Get(ctx, key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("redis find user: %w", err)
	}
	return decodeUser(data)
}

// Update overwrites an existing user with SET XX; a missing key is reported
// as domain.ErrUserNotFound.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, key(user.Username), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redis update user: %w", err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *UserRepository) Close() error {
	return r.client.Close()
}

func key(username string) string {
	return "tycoon:user:" + domain.UserKey(username)
}

func encodeUser(u *domain.User) ([]byte, error) {
	businesses := u.Businesses
	if businesses == nil {
		businesses = []domain.OwnedBusiness{}
	}
	data, err := json.Marshal(redisUser{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Balance:      u.Balance,
		LastWorkTime: u.LastWorkTime,
		Businesses:   businesses,
	})
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	return data, nil
}

func decodeUser(data []byte) (*domain.User, error) {
	var ru redisUser
	if err := json.Unmarshal(data, &ru); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &domain.User{
		Username:     ru.Username,
		PasswordHash: ru.PasswordHash,
		Balance:      ru.Balance,
		LastWorkTime: ru.LastWorkTime,
		Businesses:   ru.Businesses,
	}, nil
}
