package handler

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// Failure codes reported in the "code" field.
const (
	CodeValidation         = "validation_error"
	CodeUserExists         = "user_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodeCooldownActive     = "cooldown_active"
	CodeUnknownBusiness    = "unknown_business"
	CodeAlreadyOwned       = "already_owned"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeNothingToCollect   = "nothing_to_collect"
	CodeUnknownAction      = "unknown_action"
	CodeInternal           = "internal_error"
)

// Failure is a domain error resolved to what the client sees.
type Failure struct {
	Status     int
	Code       string
	Message    string
	RetryAfter int64
}

// Body renders the failure envelope.
func (f Failure) Body() FailureResponse {
	return FailureResponse{Error: f.Message, Code: f.Code, RetryAfter: f.RetryAfter}
}

var errUnknownAction = errors.New("unknown action")

// ResolveError maps a known domain error to its Failure. ok is false for
// anything unexpected, which callers must treat as an internal error.
func ResolveError(err error) (f Failure, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return Failure{http.StatusBadRequest, CodeValidation, validationMessage(err), 0}, true
	case errors.Is(err, domain.ErrUserExists):
		return Failure{http.StatusConflict, CodeUserExists, "user already exists", 0}, true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Failure{http.StatusUnauthorized, CodeInvalidCredentials, "invalid username or password", 0}, true
	case errors.Is(err, domain.ErrUserNotFound):
		return Failure{http.StatusNotFound, CodeUserNotFound, "user not found", 0}, true
	case errors.Is(err, domain.ErrCooldownActive):
		return Failure{http.StatusTooManyRequests, CodeCooldownActive, "you are working too often, please wait", retryAfter(err)}, true
	case errors.Is(err, domain.ErrUnknownBusiness):
		return Failure{http.StatusNotFound, CodeUnknownBusiness, "business does not exist", 0}, true
	case errors.Is(err, domain.ErrAlreadyOwned):
		return Failure{http.StatusConflict, CodeAlreadyOwned, "you already own this business", 0}, true
	case errors.Is(err, domain.ErrInsufficientFunds):
		return Failure{http.StatusUnprocessableEntity, CodeInsufficientFunds, "insufficient funds", 0}, true
	case errors.Is(err, domain.ErrNothingToCollect):
		return Failure{http.StatusUnprocessableEntity, CodeNothingToCollect, "nothing to collect yet", 0}, true
	case errors.Is(err, errUnknownAction):
		return Failure{http.StatusBadRequest, CodeUnknownAction, "unknown action", 0}, true
	}
	return Failure{}, false
}

// InternalFailure is what clients see for unexpected errors.
func InternalFailure() Failure {
	return Failure{http.StatusInternalServerError, CodeInternal, "internal server error", 0}
}

// validationMessage returns the detail that follows the ErrValidation text,
// e.g. "register: validation error: name is required" -> "name is required".
func validationMessage(err error) string {
	if _, detail, found := strings.Cut(err.Error(), domain.ErrValidation.Error()+": "); found && detail != "" {
		return detail
	}
	return "username and password must not be empty"
}

// retryAfter rounds the remaining cooldown up to whole seconds.
func retryAfter(err error) int64 {
	var ce *domain.CooldownError
	if !errors.As(err, &ce) || ce.Remaining <= 0 {
		return 0
	}
	return int64(math.Ceil(ce.Remaining.Seconds()))
}
