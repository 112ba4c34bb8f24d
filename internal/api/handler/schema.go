package handler

import (
	"encoding/json"

	"github.com/99minutos/tycoon-api/internal/core/domain"
)

// --- Requests ---

// actionRequest is the body accepted by every legacy action. Fields an
// action does not use are ignored.
type actionRequest struct {
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	BusinessID json.RawMessage `json:"businessId" swaggertype:"integer"`
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type buyBusinessRequest struct {
	BusinessID json.RawMessage `json:"businessId" swaggertype:"integer"`
}

// --- Responses ---

type userResponse struct {
	Username      string                 `json:"username"`
	Balance       int64                  `json:"balance"`
	LastWorkTime  int64                  `json:"last_work_time"`
	Businesses    []domain.OwnedBusiness `json:"businesses"`
	PendingIncome *int64                 `json:"pending_income,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

type userDataResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

type workResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	NewBalance   int64  `json:"newBalance"`
	LastWorkTime int64  `json:"last_work_time"`
}

type businessesResponse struct {
	Success    bool                        `json:"success"`
	Businesses []domain.BusinessDefinition `json:"businesses"`
}

type buyBusinessResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	NewBalance  int64                `json:"newBalance"`
	NewBusiness domain.OwnedBusiness `json:"newBusiness"`
}

type collectIncomeResponse struct {
	Success           bool                   `json:"success"`
	Message           string                 `json:"message"`
	NewBalance        int64                  `json:"newBalance"`
	Collected         int64                  `json:"collected"`
	UpdatedBusinesses []domain.OwnedBusiness `json:"updatedBusinesses"`
}

// FailureResponse is the envelope of every failed request.
type FailureResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int64  `json:"retry_after,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	businesses := u.Businesses
	if businesses == nil {
		businesses = []domain.OwnedBusiness{}
	}
	return userResponse{
		Username:     u.Username,
		Balance:      u.Balance,
		LastWorkTime: u.LastWorkTime,
		Businesses:   businesses,
	}
}
