package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meddetector/credential-gateway/internal/api/metrics"
	"github.com/meddetector/credential-gateway/internal/core/domain"
	"github.com/meddetector/credential-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a pending provider account.
//
// @Summary      Register a provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Provider registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		Password:          req.Password,
		HospitalName:      req.HospitalName,
		ContactNumber:     req.ContactNumber,
		Specialization:    req.Specialization,
		YearsOfExperience: int(req.YearsOfExperience),
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Doctor registered successfully. Please wait for admin approval.",
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:    res.Token,
		Role:     string(res.Role),
		Username: res.Username,
		Approved: res.Approved,
	})
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	}
	return "error"
}
