package service

import (
	"context"
	"sync"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	updates   int
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Key()]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Key()] = user.Clone()
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[domain.UserKey(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.Key()]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.Key()] = user.Clone()
	r.updates++
	return nil
}

func (r *stubUserRepo) Ping(context.Context) error { return nil }

func (r *stubUserRepo) get(username string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[domain.UserKey(username)].Clone()
}

func (r *stubUserRepo) put(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Key()] = u.Clone()
}

// lockWriter serializes every job behind one mutex.
type lockWriter struct {
	mu sync.Mutex
}

func (w *lockWriter) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(ctx)
}

type fixedRand struct {
	n int64
}

func (f fixedRand) Int64N(n int64) int64 {
	if f.n >= n {
		return n - 1
	}
	return f.n
}
