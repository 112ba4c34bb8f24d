package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/tycoon-api/internal/core/domain"
	"github.com/99minutos/tycoon-api/internal/pkg/clock"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository using MongoDB. Documents are
// keyed by the lower-cased username, which makes the duplicate check atomic.
type UserRepository struct {
	coll  *mongo.Collection
	clock clock.Clock
}

// NewUserRepository stamps updated_at from clk; a nil clk uses the system clock.
func NewUserRepository(db *mongo.Database, clk clock.Clock) *UserRepository {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &UserRepository{coll: db.Collection(usersCollection), clock: clk}
}

type mongoBusiness struct {
	ID                 int64 `bson:"id"`
	PurchaseTime       int64 `bson:"purchase_time"`
	LastCollectionTime int64 `bson:"last_collection_time"`
}

type mongoUser struct {
	Key          string          `bson:"_id"`
	Username     string          `bson:"username"`
	PasswordHash string          `bson:"password_hash"`
	Balance      int64           `bson:"balance"`
	LastWorkTime int64           `bson:"last_work_time"`
	Businesses   []mongoBusiness `bson:"businesses"`
	UpdatedAt    int64           `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, r.document(user))
	return insertError(err)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": domain.UserKey(username)}).Decode(&mu); err != nil {
		return nil, findError(err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.Key()}, r.document(user))
	return replaceError(res, err)
}

// Ping verifies the server is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func insertError(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrUserExists
	default:
		return fmt.Errorf("insert user: %w", err)
	}
}

func findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}

// replaceError reports ErrUserNotFound when no document matched the key.
func replaceError(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return fmt.Errorf("replace user: %w", err)
	}
	if res == nil || res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) document(u *domain.User) mongoUser {
	return toMongoUser(u, r.clock.Now().UTC().Unix())
}

func toMongoUser(u *domain.User, updatedAt int64) mongoUser {
	businesses := make([]mongoBusiness, len(u.Businesses))
	for i, b := range u.Businesses {
		businesses[i] = mongoBusiness{
			ID:                 b.ID,
			PurchaseTime:       b.PurchaseTime,
			LastCollectionTime: b.LastCollectionTime,
		}
	}
	return mongoUser{
		Key:          u.Key(),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Balance:      u.Balance,
		LastWorkTime: u.LastWorkTime,
		Businesses:   businesses,
		UpdatedAt:    updatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	businesses := make([]domain.OwnedBusiness, len(mu.Businesses))
	for i, b := range mu.Businesses {
		businesses[i] = domain.OwnedBusiness{
			ID:                 b.ID,
			PurchaseTime:       b.PurchaseTime,
			LastCollectionTime: b.LastCollectionTime,
		}
	}
	return &domain.User{
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Balance:      mu.Balance,
		LastWorkTime: mu.LastWorkTime,
		Businesses:   businesses,
	}
}
