package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coinboard/coinboard/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders plain-text bodies, matching the form-and-redirect surface of
//     the rest of the app.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.String(code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Bad input, conflicts,
	// and self-modification are all 400 on this surface; only missing
	// authority is 403.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username already exists. Please choose another."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "Username not found. Please register first."
	case errors.Is(err, domain.ErrSelfModification):
		return http.StatusBadRequest, "You cannot change your own role."
	case errors.Is(err, domain.ErrSelfRemoval):
		return http.StatusBadRequest, "You cannot remove yourself."
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusBadRequest, "Invalid or expired coin URL."
	case errors.Is(err, domain.ErrBadInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "You are not authorized to perform this action."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
