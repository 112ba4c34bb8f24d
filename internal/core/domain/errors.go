package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrCooldownActive     = errors.New("work cooldown active")
	ErrUnknownBusiness    = errors.New("business does not exist")
	ErrAlreadyOwned       = errors.New("business already owned")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNothingToCollect   = errors.New("nothing to collect yet")
)

// CooldownError is returned by the work action while the cooldown is running.
// It matches ErrCooldownActive with errors.Is.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrCooldownActive, e.Remaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
