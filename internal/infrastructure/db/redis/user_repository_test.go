package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// memoryHook answers GET, SETNX and SET XX from a map so repository calls run
// through the real client without a server.
type memoryHook struct {
	mu   sync.Mutex
	data map[string]string
	fail error
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.fail != nil {
			cmd.SetErr(h.fail)
			return h.fail
		}

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := h.data[fmt.Sprint(args[1])]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.BoolCmd:
			k, v := fmt.Sprint(args[1]), string(args[2].([]byte))
			_, exists := h.data[k]
			write := (cmd.Name() == "setnx" && !exists) || (cmd.Name() == "set" && exists)
			if write {
				h.data[k] = v
			}
			c.SetVal(write)
		case *redis.StatusCmd:
			c.SetVal("PONG")
		default:
			return fmt.Errorf("unexpected command %s", cmd.Name())
		}
		return nil
	}
}

func newMemoryRepo(t *testing.T) (*UserRepository, *memoryHook) {
	t.Helper()
	hook := &memoryHook{data: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return NewUserRepository(client), hook
}

func TestKeyIsCaseInsensitive(t *testing.T) {
	if key("Alice") != "tycoon:user:alice" {
		t.Fatalf("unexpected key: %s", key("Alice"))
	}
}

func TestEncodeDecodeUser(t *testing.T) {
	in := &domain.User{
		Username:     "Alice",
		PasswordHash: "hash",
		Balance:      100,
		LastWorkTime: 42,
		Businesses:   []domain.OwnedBusiness{{ID: 2, PurchaseTime: 1, LastCollectionTime: 3}},
	}

	data, err := encodeUser(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeUser(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Username != in.Username || out.PasswordHash != in.PasswordHash || out.Balance != 100 || out.LastWorkTime != 42 {
		t.Fatalf("unexpected user: %+v", out)
	}
	if len(out.Businesses) != 1 || out.Businesses[0] != in.Businesses[0] {
		t.Fatalf("unexpected businesses: %+v", out.Businesses)
	}
}

func TestEncodeUser_NilBusinessesBecomeEmptyList(t *testing.T) {
	data, err := encodeUser(&domain.User{Username: "bob"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeUser(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Businesses == nil || len(out.Businesses) != 0 {
		t.Fatalf("expected empty, non-nil businesses, got %#v", out.Businesses)
	}
}

func TestDecodeUser_Invalid(t *testing.T) {
	if _, err := decodeUser([]byte("nope")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestConfigOptions(t *testing.T) {
	opts, err := Config{Addr: "cache:6380", Password: "pw", DB: 3}.options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "pw" || opts.DB != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = Config{Addr: "redis://:secret@localhost:6379/2"}.options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("unexpected url options: %+v", opts)
	}
}

func TestUserRepository_CreateFindUpdate(t *testing.T) {
	repo, hook := newMemoryRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Username: "Alice", PasswordHash: "h", Balance: 100}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := hook.data["tycoon:user:alice"]; !ok {
		t.Fatalf("expected value under lower-cased key, got %v", hook.data)
	}

	got, err := repo.FindByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Username != "Alice" || got.Balance != 100 {
		t.Fatalf("unexpected user: %+v", got)
	}

	got.Balance = 75
	got.Businesses = []domain.OwnedBusiness{{ID: 1, PurchaseTime: 5, LastCollectionTime: 5}}
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.FindByUsername(ctx, "alice")
	if err != nil || again.Balance != 75 || len(again.Businesses) != 1 {
		t.Fatalf("expected updated user, got %+v %v", again, err)
	}

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	repo, hook := newMemoryRepo(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &domain.User{Username: "bob", Balance: 100})
	if err := repo.Create(ctx, &domain.User{Username: "BOB", Balance: 5}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	stored, _ := decodeUser([]byte(hook.data["tycoon:user:bob"]))
	if stored.Username != "bob" || stored.Balance != 100 {
		t.Fatalf("duplicate create overwrote the user: %+v", stored)
	}
}

func TestUserRepository_MissingUser(t *testing.T) {
	repo, hook := newMemoryRepo(t)
	ctx := context.Background()

	if _, err := repo.FindByUsername(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on find, got %v", err)
	}
	if err := repo.Update(ctx, &domain.User{Username: "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on update, got %v", err)
	}
	if len(hook.data) != 0 {
		t.Fatalf("SET XX must not create a missing key, got %v", hook.data)
	}
}

func TestUserRepository_ClientErrorsAreWrapped(t *testing.T) {
	repo, hook := newMemoryRepo(t)
	ctx := context.Background()
	hook.fail = errors.New("connection refused")

	err := repo.Create(ctx, &domain.User{Username: "carol"})
	if !errors.Is(err, hook.fail) || !strings.Contains(err.Error(), "redis create user") {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
	if _, err := repo.FindByUsername(ctx, "carol"); !errors.Is(err, hook.fail) || errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected wrapped find error, got %v", err)
	}
	if err := repo.Update(ctx, &domain.User{Username: "carol"}); !errors.Is(err, hook.fail) {
		t.Fatalf("expected wrapped update error, got %v", err)
	}
}
