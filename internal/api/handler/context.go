package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/api/middleware"
	"github.com/meddetector/credential-gateway/internal/core/domain"
)

// ctxUser returns the live user record injected by the Authenticate
// middleware. Its absence means the route was mounted without the guard;
// reject with 401 rather than run unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Token is missing")
	}
	return user, nil
}
