package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/service"
)

// AuthHandler handles registration and authentication endpoints.
type AuthHandler struct {
	registrationService service.RegistrationService
	authService         service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(registrationService service.RegistrationService, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		authService:         authService,
	}
}

// RegisterRequest represents a registration request. Doctor fields are only
// honored when select_role is doctor.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Password       string `json:"password" validate:"required,min=6"`
	SelectRole     string `json:"select_role" validate:"required,oneof=patient doctor"`
	ProfilePicture string `json:"profile_picture"`
	Address        string `json:"address" validate:"required"`
	City           string `json:"city" validate:"required"`
	State          string `json:"state" validate:"required"`
	Pincode        int    `json:"pincode" validate:"required"`

	Categories        []uint `json:"categories"`
	EstablishmentName string `json:"establishment_name"`
	LicenseNumber     string `json:"license_number"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries session tokens, display data, and the calendar
// consent URL.
type LoginResponse struct {
	AuthURL        string `json:"auth_url"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
	UserID         uint   `json:"user_id"`
	IsPatient      bool   `json:"is_patient"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register godoc
// @Summary Register a patient or doctor account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.registrationService.Register(c.Request().Context(), &service.RegisterInput{
		Username:          req.Username,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Password:          req.Password,
		Role:              model.Role(req.SelectRole),
		ProfilePicture:    req.ProfilePicture,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		Pincode:           req.Pincode,
		CategoryIDs:       req.Categories,
		EstablishmentName: req.EstablishmentName,
		LicenseNumber:     req.LicenseNumber,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login godoc
// @Summary Login and obtain the calendar consent URL
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AuthURL:        result.AuthURL,
		FullName:       result.FullName,
		ProfilePicture: result.ProfilePicture,
		UserID:         result.UserID,
		IsPatient:      result.IsPatient,
		AccessToken:    result.AccessToken,
		RefreshToken:   result.RefreshToken,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to refresh token",
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"access_token": accessToken})
}

// Logout godoc
// @Summary Logout and drop cached credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User logged out successfully"})
}
