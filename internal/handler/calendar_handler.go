package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// CalendarHandler handles the external calendar authorization callback.
type CalendarHandler struct {
	calendarAuthService service.CalendarAuthService
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(calendarAuthService service.CalendarAuthService) *CalendarHandler {
	return &CalendarHandler{calendarAuthService: calendarAuthService}
}

// Callback godoc
// @Summary Exchange the provider authorization code for a calendar credential
// @Tags calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /auth/google/callback [get]
func (h *CalendarHandler) Callback(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	accessToken, err := h.calendarAuthService.HandleCallback(c.Request().Context(), userID, c.QueryParam("code"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":      "Logged In Successfully",
		"access_token": accessToken,
	})
}
