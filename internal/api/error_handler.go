package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/tycoon-api/internal/api/handler"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as the failure envelope. Unexpected errors are logged and answered
// with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		f := resolveError(err, log, c)
		_ = c.JSON(f.Status, f.Body())
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) handler.Failure {
	// Echo's own errors (router 404, auth middleware, rate limiter...).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return handler.Failure{Status: he.Code, Code: httpCode(he.Code), Message: fmt.Sprintf("%v", he.Message)}
	}

	if f, ok := handler.ResolveError(err); ok {
		return f
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return handler.InternalFailure()
}

func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return handler.CodeValidation
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	if status >= http.StatusInternalServerError {
		return handler.CodeInternal
	}
	return "http_error"
}
