package domain

import "strings"

// DefaultStartingBalance is the balance credited to a freshly registered user.
const DefaultStartingBalance int64 = 100

// User is the aggregate root of the game: one player with a cash balance and
// the businesses they own. Timestamps are Unix seconds; zero means never.
type User struct {
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      int64           `json:"balance"`
	LastWorkTime int64           `json:"last_work_time"`
	Businesses   []OwnedBusiness `json:"businesses"`
}

// OwnedBusiness is a business a user has bought. LastCollectionTime is the
// accrual checkpoint and only ever moves forward.
type OwnedBusiness struct {
	ID                 int64 `json:"id"`
	PurchaseTime       int64 `json:"purchase_time"`
	LastCollectionTime int64 `json:"last_collection_time"`
}

// UserKey returns the case-insensitive identity of a username.
func UserKey(username string) string {
	return strings.ToLower(username)
}

// Key returns the store key of the user.
func (u *User) Key() string {
	return UserKey(u.Username)
}

// Owns reports whether the user already has a business with the given id.
func (u *User) Owns(businessID int64) bool {
	for _, b := range u.Businesses {
		if b.ID == businessID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate it without touching the
// stored record.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Businesses = append([]OwnedBusiness(nil), u.Businesses...)
	return &c
}
