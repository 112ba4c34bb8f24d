package domain

import (
	"errors"
	"testing"
	"time"
)

func TestUserKeyIsCaseInsensitive(t *testing.T) {
	if UserKey("Alice") != UserKey("aLICE") {
		t.Fatalf("expected equal keys")
	}
	u := &User{Username: "Alice"}
	if u.Key() != "alice" {
		t.Fatalf("expected alice, got %s", u.Key())
	}
}

func TestUserOwns(t *testing.T) {
	u := &User{Businesses: []OwnedBusiness{{ID: 2}}}
	if !u.Owns(2) || u.Owns(1) {
		t.Fatalf("unexpected ownership result")
	}
}

func TestUserCloneIsDeep(t *testing.T) {
	u := &User{Username: "a", Balance: 1, Businesses: []OwnedBusiness{{ID: 1, LastCollectionTime: 5}}}
	c := u.Clone()
	c.Balance = 99
	c.Businesses[0].LastCollectionTime = 10

	if u.Balance != 1 || u.Businesses[0].LastCollectionTime != 5 {
		t.Fatalf("clone shares state with original: %+v", u)
	}
	var nilUser *User
	if nilUser.Clone() != nil {
		t.Fatalf("expected nil clone of nil user")
	}
}

func TestCooldownErrorMatchesSentinel(t *testing.T) {
	var err error = &CooldownError{Remaining: 5 * time.Second}
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected errors.Is to match ErrCooldownActive")
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unexpected match")
	}
}
