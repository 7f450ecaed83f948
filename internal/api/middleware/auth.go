package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

const userContextKey = "user"

// Authenticate resolves the Authorization header to the live user record and
// stores it in the context. The header carries the raw token; a "Bearer "
// prefix is tolerated but not required.
func Authenticate(guard ports.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))

			user, err := guard.Authenticate(c.Request().Context(), raw)
			if err != nil {
				if reason := rejectionReason(err); reason != "" {
					metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok && user != nil
}

func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return header
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotApproved):
		return "not_approved"
	}
	return ""
}
