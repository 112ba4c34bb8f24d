// Package filestore keeps every user in a single JSON array on disk. Each
// mutation rewrites the whole file atomically while holding the store mutex,
// so concurrent writers never lose each other's updates.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// fileUser is the on-disk layout of a user record.
type fileUser struct {
	Username     string         `json:"username"`
	Password     string         `json:"password"`
	Balance      legacyInt      `json:"balance"`
	LastWorkTime legacyInt      `json:"last_work_time"`
	Businesses   []fileBusiness `json:"businesses"`
}

type fileBusiness struct {
	ID                 legacyInt `json:"id"`
	PurchaseTime       legacyInt `json:"purchase_time"`
	LastCollectionTime legacyInt `json:"last_collection_time"`
}

// Store implements ports.UserRepository on top of a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

// Open prepares a store at path, creating the parent directories and an
// empty user list when the file does not exist yet.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(users, user.Key()) >= 0 {
		return domain.ErrUserExists
	}
	return s.save(append(users, toFileUser(user)))
}

func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(users, domain.UserKey(username))
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	return toDomain(users[i]), nil
}

func (s *Store) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(users, user.Key())
	if i < 0 {
		return domain.ErrUserNotFound
	}
	users[i] = toFileUser(user)
	return s.save(users)
}

// Ping checks that the store file is readable.
func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := os.Stat(s.path)
	return err
}

// load reads the user list. A missing file is created empty; an unparsable
// one is moved aside and replaced by an empty list.
func (s *Store) load() ([]fileUser, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("filestore: create data dir: %w", err)
		}
		if err := s.save([]fileUser{}); err != nil {
			return nil, err
		}
		return []fileUser{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read: %w", err)
	}

	var users []fileUser
	if err := json.Unmarshal(data, &users); err != nil {
		aside := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().Unix())
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			return nil, fmt.Errorf("filestore: quarantine corrupt file: %w", renameErr)
		}
		s.log.Warn().Err(err).Str("path", s.path).Str("moved_to", aside).Msg("corrupt user store replaced with empty list")
		if err := s.save([]fileUser{}); err != nil {
			return nil, err
		}
		return []fileUser{}, nil
	}
	if users == nil {
		users = []fileUser{}
	}
	return users, nil
}

// save writes users to a temp file in the same directory and renames it over
// the store so readers never observe a partial file.
func (s *Store) save(users []fileUser) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("filestore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("filestore: replace: %w", err)
	}
	return nil
}

func indexOf(users []fileUser, key string) int {
	for i := range users {
		if domain.UserKey(users[i].Username) == key {
			return i
		}
	}
	return -1
}

func toFileUser(u *domain.User) fileUser {
	businesses := make([]fileBusiness, len(u.Businesses))
	for i, b := range u.Businesses {
		businesses[i] = fileBusiness{
			ID:                 legacyInt(b.ID),
			PurchaseTime:       legacyInt(b.PurchaseTime),
			LastCollectionTime: legacyInt(b.LastCollectionTime),
		}
	}
	return fileUser{
		Username:     u.Username,
		Password:     u.PasswordHash,
		Balance:      legacyInt(u.Balance),
		LastWorkTime: legacyInt(u.LastWorkTime),
		Businesses:   businesses,
	}
}

func toDomain(fu fileUser) *domain.User {
	businesses := make([]domain.OwnedBusiness, len(fu.Businesses))
	for i, b := range fu.Businesses {
		businesses[i] = domain.OwnedBusiness{
			ID:                 int64(b.ID),
			PurchaseTime:       int64(b.PurchaseTime),
			LastCollectionTime: int64(b.LastCollectionTime),
		}
	}
	return &domain.User{
		Username:     fu.Username,
		PasswordHash: fu.Password,
		Balance:      int64(fu.Balance),
		LastWorkTime: int64(fu.LastWorkTime),
		Businesses:   businesses,
	}
}
