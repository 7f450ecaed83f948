package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

// AdminHandler exposes the provider approval workflow to administrators.
// Routes are mounted behind Authenticate and RequireRole(admin).
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// ListDoctors returns every provider record without credentials.
//
// @Summary      List providers
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /admin/doctors [get]
func (h *AdminHandler) ListDoctors(c echo.Context) error {
	providers, err := h.accounts.ListProviders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, providers)
}

// Approve moves a pending provider to approved.
//
// @Summary      Approve a provider
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /admin/approve/{id} [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	if err := h.accounts.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ProviderTransitionsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Doctor approved successfully"})
}

// Delete removes a provider account.
//
// @Summary      Delete a provider
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Provider id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /admin/delete/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ProviderTransitionsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Doctor deleted successfully"})
}
