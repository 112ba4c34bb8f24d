package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/api/metrics"
	"github.com/99minutos/tycoon-api/internal/core/ports"
)

// GameHandler serves the player actions over both the legacy action
// endpoint and the /v1 routes.
type GameHandler struct {
	auth ports.AuthService
	game ports.GameService
	log  zerolog.Logger
}

func NewGameHandler(auth ports.AuthService, game ports.GameService, log zerolog.Logger) *GameHandler {
	return &GameHandler{auth: auth, game: game, log: log}
}

// --- Actions shared by both surfaces ---

func (h *GameHandler) register(ctx context.Context, username, password string) (any, error) {
	if err := h.auth.Register(ctx, username, password); err != nil {
		return nil, err
	}
	return successResponse{Success: true}, nil
}

func (h *GameHandler) login(ctx context.Context, username, password string) (any, error) {
	token, user, err := h.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return loginResponse{Success: true, User: toUserResponse(user), Token: token}, nil
}

func (h *GameHandler) userData(ctx context.Context, username string) (any, error) {
	view, err := h.auth.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	u := toUserResponse(view.User)
	pending := view.PendingIncome
	u.PendingIncome = &pending
	return userDataResponse{Success: true, User: u}, nil
}

func (h *GameHandler) work(ctx context.Context, username string) (any, error) {
	res, err := h.game.Work(ctx, username)
	if err != nil {
		return nil, err
	}
	metrics.CoinsMintedTotal.WithLabelValues("work").Add(float64(res.Earned))
	return workResponse{
		Success:      true,
		Message:      fmt.Sprintf("you earned %d $!", res.Earned),
		NewBalance:   res.NewBalance,
		LastWorkTime: res.LastWorkTime,
	}, nil
}

func (h *GameHandler) businesses() (any, error) {
	return businessesResponse{Success: true, Businesses: h.game.Businesses()}, nil
}

func (h *GameHandler) buyBusiness(ctx context.Context, username string, rawID json.RawMessage) (any, error) {
	res, err := h.game.BuyBusiness(ctx, username, parseBusinessID(rawID))
	if err != nil {
		return nil, err
	}
	metrics.BusinessesPurchasedTotal.WithLabelValues(strconv.FormatInt(res.Business.ID, 10)).Inc()
	metrics.CoinsSpentTotal.Add(float64(res.Business.Cost))
	return buyBusinessResponse{
		Success:     true,
		Message:     fmt.Sprintf("you successfully bought %q!", res.Business.Name),
		NewBalance:  res.NewBalance,
		NewBusiness: res.NewBusiness,
	}, nil
}

func (h *GameHandler) collectIncome(ctx context.Context, username string) (any, error) {
	res, err := h.game.CollectIncome(ctx, username)
	if err != nil {
		return nil, err
	}
	metrics.CoinsMintedTotal.WithLabelValues("income").Add(float64(res.Collected))
	return collectIncomeResponse{
		Success:           true,
		Message:           fmt.Sprintf("you collected %d $ of income!", res.Collected),
		NewBalance:        res.NewBalance,
		Collected:         res.Collected,
		UpdatedBusinesses: res.UpdatedBusinesses,
	}, nil
}

// parseBusinessID accepts a JSON number or a numeric string. Anything else
// yields 0, which never names a catalog entry.
func parseBusinessID(raw json.RawMessage) int64 {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		var f float64
		if json.Unmarshal([]byte(s), &f) != nil || f != float64(int64(f)) {
			return 0
		}
		id = int64(f)
	}
	return id
}

// reply renders the outcome of an action. Known domain failures are written
// with HTTP 200 on the legacy endpoint and with their own status otherwise.
// Unexpected errors go to the central error handler.
func (h *GameHandler) reply(c echo.Context, action string, start time.Time, legacy bool, resp any, err error) error {
	if err != nil {
		f, ok := ResolveError(err)
		if !ok {
			observe(action, CodeInternal, start)
			return err
		}
		observe(action, f.Code, start)

		status := f.Status
		if legacy {
			status = http.StatusOK
		} else if f.RetryAfter > 0 {
			c.Response().Header().Set("Retry-After", strconv.FormatInt(f.RetryAfter, 10))
		}
		return c.JSON(status, f.Body())
	}

	observe(action, "ok", start)
	return c.JSON(http.StatusOK, resp)
}

func observe(action, result string, start time.Time) {
	metrics.ActionsTotal.WithLabelValues(action, result).Inc()
	metrics.ActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
