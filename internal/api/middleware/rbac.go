package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/service"
)

// RequireRole enforces an exact role match on the authenticated user.
// It must run after Authenticate.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return gate(func(user *domain.User) error {
		return service.RequireRole(user, role)
	})
}

// RequireApproved rejects providers still pending approval.
// It must run after Authenticate.
func RequireApproved() echo.MiddlewareFunc {
	return gate(service.RequireApproved)
}

func gate(check func(*domain.User) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := CurrentUser(c)
			if err := check(user); err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}
			return next(c)
		}
	}
}
