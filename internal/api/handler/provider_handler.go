package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ProviderHandler serves the provider's own account routes.
type ProviderHandler struct {
	log zerolog.Logger
}

func NewProviderHandler(log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{log: log}
}

// Profile returns the caller's non-sensitive account fields.
//
// @Summary      Provider profile
// @Tags         doctor
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /doctor/profile [get]
func (h *ProviderHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// Upload accepts a file from an approved provider. The payload is not processed.
//
// @Summary      Upload a file
// @Tags         doctor
// @Accept       mpfd
// @Produce      json
// @Security     TokenAuth
// @Param        file  formData  file  false  "File to upload"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /doctor/upload [post]
func (h *ProviderHandler) Upload(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	evt := h.log.Info().Str("username", user.Username)
	if fh, err := c.FormFile("file"); err == nil {
		evt = evt.Str("filename", fh.Filename).Int64("size", fh.Size)
	}
	evt.Msg("upload accepted")

	return c.JSON(http.StatusOK, messageResponse{Message: "File uploaded successfully"})
}
