// Package sqlite implements the user repository on an embedded SQLite
// database. Owned businesses live in their own table and are rewritten
// together with the user row inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

type Store struct {
	db *sqlx.DB
}

type userRow struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Balance      int64  `db:"balance"`
	LastWorkTime int64  `db:"last_work_time"`
}

type businessRow struct {
	ID                 int64 `db:"business_id"`
	PurchaseTime       int64 `db:"purchase_time"`
	LastCollectionTime int64 `db:"last_collection_time"`
}

// Open opens the database at dsn, enables foreign keys and applies pending
// migrations.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps PRAGMAs and writes on one handle.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx executes fn within a transaction, committing when fn succeeds.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Create(ctx context.Context, user *domain.User) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (username_key, username, password_hash, balance, last_work_time)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (username_key) DO NOTHING`,
			user.Key(), user.Username, user.PasswordHash, user.Balance, user.LastWorkTime)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrUserExists
		}
		return insertBusinesses(ctx, tx, user)
	})
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	key := domain.UserKey(username)

	var row userRow
	err := s.db.GetContext(ctx, &row, `
		SELECT username, password_hash, balance, last_work_time
		FROM users WHERE username_key = ?`, key)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var owned []businessRow
	err = s.db.SelectContext(ctx, &owned, `
		SELECT business_id, purchase_time, last_collection_time
		FROM owned_businesses WHERE username_key = ?
		ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("select businesses: %w", err)
	}

	u := &domain.User{
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Balance:      row.Balance,
		LastWorkTime: row.LastWorkTime,
		Businesses:   make([]domain.OwnedBusiness, 0, len(owned)),
	}
	for _, b := range owned {
		u.Businesses = append(u.Businesses, domain.OwnedBusiness{
			ID:                 b.ID,
			PurchaseTime:       b.PurchaseTime,
			LastCollectionTime: b.LastCollectionTime,
		})
	}
	return u, nil
}

func (s *Store) Update(ctx context.Context, user *domain.User) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET balance = ?, last_work_time = ?, password_hash = ?
			WHERE username_key = ?`,
			user.Balance, user.LastWorkTime, user.PasswordHash, user.Key())
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrUserNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM owned_businesses WHERE username_key = ?`, user.Key()); err != nil {
			return fmt.Errorf("clear businesses: %w", err)
		}
		return insertBusinesses(ctx, tx, user)
	})
}

func insertBusinesses(ctx context.Context, tx *sqlx.Tx, user *domain.User) error {
	for i, b := range user.Businesses {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO owned_businesses (username_key, business_id, purchase_time, last_collection_time, position)
			VALUES (?, ?, ?, ?, ?)`,
			user.Key(), b.ID, b.PurchaseTime, b.LastCollectionTime, i)
		if err != nil {
			return fmt.Errorf("insert business %d: %w", b.ID, err)
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}
