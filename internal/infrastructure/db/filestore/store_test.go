package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "users.json")
	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, path
}

func TestOpen_CreatesEmptyFile(t *testing.T) {
	_, path := openTemp(t)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected store file to exist: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestStore_CreateFindUpdate(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	user := &domain.User{Username: "Alice", PasswordHash: "hash", Balance: 100, Businesses: []domain.OwnedBusiness{}}
	if err := s.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Username != "Alice" || got.PasswordHash != "hash" || got.Balance != 100 {
		t.Fatalf("unexpected user: %+v", got)
	}

	got.Balance = 50
	got.Businesses = append(got.Businesses, domain.OwnedBusiness{ID: 1, PurchaseTime: 10, LastCollectionTime: 20})
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	again, err := s.FindByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if again.Balance != 50 || len(again.Businesses) != 1 || again.Businesses[0].LastCollectionTime != 20 {
		t.Fatalf("update not persisted: %+v", again)
	}
}

func TestStore_Errors(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	if _, err := s.FindByUsername(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := s.Update(ctx, &domain.User{Username: "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on update, got %v", err)
	}

	_ = s.Create(ctx, &domain.User{Username: "bob"})
	if err := s.Create(ctx, &domain.User{Username: "BOB"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestStore_FileLayout(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()

	_ = s.Create(ctx, &domain.User{Username: "first", PasswordHash: "h1", Balance: 100})
	_ = s.Create(ctx, &domain.User{Username: "second", PasswordHash: "h2", Balance: 100,
		Businesses: []domain.OwnedBusiness{{ID: 2, PurchaseTime: 7, LastCollectionTime: 8}}})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("store is not a JSON array: %v", err)
	}
	if len(raw) != 2 || raw[0]["username"] != "first" || raw[1]["username"] != "second" {
		t.Fatalf("expected insertion order, got %v", raw)
	}
	if raw[0]["password"] != "h1" {
		t.Fatalf("expected password hash under \"password\", got %v", raw[0])
	}
	biz := raw[1]["businesses"].([]any)[0].(map[string]any)
	if biz["id"] != float64(2) || biz["purchase_time"] != float64(7) || biz["last_collection_time"] != float64(8) {
		t.Fatalf("unexpected business layout: %v", biz)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	s, path := openTemp(t)
	_ = s.Create(context.Background(), &domain.User{Username: "carol", Balance: 7})

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.FindByUsername(context.Background(), "carol")
	if err != nil || got.Balance != 7 {
		t.Fatalf("expected persisted user, got %+v %v", got, err)
	}
}

func TestStore_CorruptFileIsQuarantined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.FindByUsername(context.Background(), "anyone"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected empty store, got %v", err)
	}

	matches, _ := filepath.Glob(path + ".corrupt-*")
	if len(matches) != 1 {
		t.Fatalf("expected corrupt file to be kept aside, found %v", matches)
	}
	kept, _ := os.ReadFile(matches[0])
	if string(kept) != "{not json" {
		t.Fatalf("quarantined content changed: %q", kept)
	}
}

func TestStore_ReadsLegacyFloatNumbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	legacy := `[
    {"username": "alice", "password": "h1", "balance": 125.0, "last_work_time": 1700000000.0,
     "businesses": [{"id": 1, "purchase_time": 1700000000, "last_collection_time": 1700003600.0}]},
    {"username": "bob", "password": "h2", "balance": 100, "last_work_time": 0, "businesses": []}
]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()

	alice, err := s.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	if alice.Balance != 125 || alice.LastWorkTime != 1700000000 {
		t.Fatalf("unexpected alice: %+v", alice)
	}
	if len(alice.Businesses) != 1 || alice.Businesses[0].LastCollectionTime != 1700003600 {
		t.Fatalf("unexpected alice businesses: %+v", alice.Businesses)
	}
	bob, err := s.FindByUsername(ctx, "bob")
	if err != nil || bob.Balance != 100 {
		t.Fatalf("expected bob with 100, got %+v %v", bob, err)
	}

	if matches, _ := filepath.Glob(path + ".corrupt-*"); len(matches) != 0 {
		t.Fatalf("legacy file should not be quarantined, found %v", matches)
	}

	alice.Balance = 130
	if err := s.Update(ctx, alice); err != nil {
		t.Fatalf("update: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"balance": 130`) || strings.Contains(string(data), "125.0") {
		t.Fatalf("expected rewrite with integer numbers, got %s", data)
	}
}

func TestLegacyInt_Unmarshal(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: `42`, want: 42},
		{in: `125.0`, want: 125},
		{in: `-3.0`, want: -3},
		{in: `1.7e9`, want: 1700000000},
		{in: `"88"`, want: 88},
		{in: `null`, want: 0},
		{in: `12.5`, wantErr: true},
		{in: `"abc"`, wantErr: true},
		{in: `1e30`, wantErr: true},
	}
	for _, tc := range cases {
		var n legacyInt
		err := json.Unmarshal([]byte(tc.in), &n)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %d", tc.in, n)
			}
			continue
		}
		if err != nil || int64(n) != tc.want {
			t.Errorf("%s: expected %d, got %d %v", tc.in, tc.want, n, err)
		}
	}
}

func TestStore_FractionalNumberIsQuarantined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte(`[{"username":"dave","password":"h","balance":12.5,"last_work_time":0,"businesses":[]}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path, zerolog.Nop()); err != nil {
		t.Fatalf("open: %v", err)
	}
	if matches, _ := filepath.Glob(path + ".corrupt-*"); len(matches) != 1 {
		t.Fatalf("expected fractional balance to be quarantined, found %v", matches)
	}
}

func TestStore_ConcurrentWritersDoNotLoseUsers(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	names := []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9"}
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := s.Create(ctx, &domain.User{Username: name, Balance: 1}); err != nil {
				t.Errorf("create %s: %v", name, err)
			}
		}(name)
	}
	wg.Wait()

	for _, name := range names {
		if _, err := s.FindByUsername(ctx, name); err != nil {
			t.Fatalf("lost user %s: %v", name, err)
		}
	}
}
