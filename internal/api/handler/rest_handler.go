package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Register creates a new player account.
//
// @Summary      Register a new player
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  FailureResponse
// @Failure      409   {object}  FailureResponse
// @Router       /v1/auth/register [post]
func (h *GameHandler) Register(c echo.Context) error {
	start := time.Now()
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, FailureResponse{Error: "invalid payload", Code: CodeValidation})
	}
	if err := c.Validate(&req); err != nil {
		return h.reply(c, "register", start, false, nil, err)
	}
	resp, err := h.register(c.Request().Context(), req.Username, req.Password)
	return h.reply(c, "register", start, false, resp, err)
}

// Login authenticates a player and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  FailureResponse
// @Failure      401   {object}  FailureResponse
// @Router       /v1/auth/login [post]
func (h *GameHandler) Login(c echo.Context) error {
	start := time.Now()
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, FailureResponse{Error: "invalid payload", Code: CodeValidation})
	}
	resp, err := h.login(c.Request().Context(), req.Username, req.Password)
	return h.reply(c, "login", start, false, resp, err)
}

// Businesses lists the business catalog.
//
// @Summary      List businesses
// @Tags         game
// @Produce      json
// @Success      200  {object}  businessesResponse
// @Router       /v1/businesses [get]
func (h *GameHandler) Businesses(c echo.Context) error {
	resp, err := h.businesses()
	return h.reply(c, "getBusinesses", time.Now(), false, resp, err)
}

// Me returns the authenticated player with pending income.
//
// @Summary      Current player
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDataResponse
// @Failure      401  {object}  FailureResponse
// @Failure      404  {object}  FailureResponse
// @Router       /v1/me [get]
func (h *GameHandler) Me(c echo.Context) error {
	start := time.Now()
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	resp, err := h.userData(c.Request().Context(), username)
	return h.reply(c, "getUserData", start, false, resp, err)
}

// Work performs the work action for the authenticated player.
//
// @Summary      Work
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workResponse
// @Failure      401  {object}  FailureResponse
// @Failure      429  {object}  FailureResponse
// @Router       /v1/me/work [post]
func (h *GameHandler) Work(c echo.Context) error {
	start := time.Now()
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	resp, err := h.work(c.Request().Context(), username)
	return h.reply(c, "work", start, false, resp, err)
}

// BuyBusiness purchases a business for the authenticated player.
//
// @Summary      Buy a business
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      buyBusinessRequest  true  "Business to buy"
// @Success      200   {object}  buyBusinessResponse
// @Failure      401   {object}  FailureResponse
// @Failure      404   {object}  FailureResponse
// @Failure      409   {object}  FailureResponse
// @Failure      422   {object}  FailureResponse
// @Router       /v1/me/businesses [post]
func (h *GameHandler) BuyBusiness(c echo.Context) error {
	start := time.Now()
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	var req buyBusinessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, FailureResponse{Error: "invalid payload", Code: CodeValidation})
	}
	resp, err := h.buyBusiness(c.Request().Context(), username, req.BusinessID)
	return h.reply(c, "buyBusiness", start, false, resp, err)
}

// CollectIncome collects accrued income for the authenticated player.
//
// @Summary      Collect income
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  collectIncomeResponse
// @Failure      401  {object}  FailureResponse
// @Failure      422  {object}  FailureResponse
// @Router       /v1/me/income [post]
func (h *GameHandler) CollectIncome(c echo.Context) error {
	start := time.Now()
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}
	resp, err := h.collectIncome(c.Request().Context(), username)
	return h.reply(c, "collectIncome", start, false, resp, err)
}
