package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type actionFunc func(h *GameHandler, c echo.Context, req actionRequest) (any, error)

var actions = map[string]actionFunc{
	"register": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.register(c.Request().Context(), req.Username, req.Password)
	},
	"login": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.login(c.Request().Context(), req.Username, req.Password)
	},
	"getUserData": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.userData(c.Request().Context(), req.Username)
	},
	"work": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.work(c.Request().Context(), req.Username)
	},
	"getBusinesses": func(h *GameHandler, _ echo.Context, _ actionRequest) (any, error) {
		return h.businesses()
	},
	"buyBusiness": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.buyBusiness(c.Request().Context(), req.Username, req.BusinessID)
	},
	"collectIncome": func(h *GameHandler, c echo.Context, req actionRequest) (any, error) {
		return h.collectIncome(c.Request().Context(), req.Username)
	},
}

// Action dispatches a legacy request by its action query parameter.
// Domain failures are answered with HTTP 200 and success=false.
//
// @Summary      Legacy action endpoint
// @Description  Actions: register, login, getUserData, work, getBusinesses, buyBusiness, collectIncome.
// @Tags         legacy
// @Accept       json
// @Produce      json
// @Param        action  query     string         true   "Action name"
// @Param        body    body      actionRequest  false  "Action arguments"
// @Success      200     {object}  FailureResponse
// @Failure      400     {object}  FailureResponse
// @Failure      500     {object}  FailureResponse
// @Router       /api [post]
func (h *GameHandler) Action(c echo.Context) error {
	start := time.Now()
	name := c.QueryParam("action")

	fn, ok := actions[name]
	if !ok {
		return h.reply(c, "unknown", start, true, nil, errUnknownAction)
	}

	req, err := decodeActionRequest(c)
	if err != nil {
		observe(name, CodeValidation, start)
		return c.JSON(http.StatusBadRequest, FailureResponse{Error: "invalid payload", Code: CodeValidation})
	}

	resp, err := fn(h, c, req)
	return h.reply(c, name, start, true, resp, err)
}

// decodeActionRequest reads the JSON body. Query parameters fill in fields
// the body leaves empty, so simple GET calls work without a body.
func decodeActionRequest(c echo.Context) (actionRequest, error) {
	var req actionRequest

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return req, err
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, err
		}
	}

	if req.Username == "" {
		req.Username = c.QueryParam("username")
	}
	if len(req.BusinessID) == 0 {
		if id := c.QueryParam("businessId"); id != "" {
			req.BusinessID = json.RawMessage(id)
		}
	}
	return req, nil
}
