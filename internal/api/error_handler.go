package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Invalid payload"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username or email already exists"
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "Token is missing"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Token is invalid"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Unauthorized"
	case errors.Is(err, domain.ErrNotApproved):
		return http.StatusForbidden, "Your account is not approved yet"
	case errors.Is(err, domain.ErrNotFoundOrApproved):
		return http.StatusNotFound, "Doctor not found or already approved"
	case errors.Is(err, domain.ErrProviderNotFound):
		return http.StatusNotFound, "Doctor not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
