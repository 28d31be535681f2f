package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// DoctorHandler handles doctor discovery and user detail endpoints.
type DoctorHandler struct {
	doctorService service.DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(doctorService service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// ListFiltered godoc
// @Summary List doctors filtered by category and location
// @Tags doctors
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(6)
// @Param categories[] query []int false "Category ids"
// @Param location query string false "Location substring matched against city, state, address"
// @Success 200 {object} service.DoctorDirectoryResult
// @Router /doctors [get]
func (h *DoctorHandler) ListFiltered(c echo.Context) error {
	offset := queryInt(c, "offset", 0)
	limit := queryInt(c, "limit", 6)

	result, err := h.doctorService.ListFiltered(c.Request().Context(), queryCategoryIDs(c), c.QueryParam("location"), offset, limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// UserDetails godoc
// @Summary Get the role-shaped details of one account
// @Tags users
// @Produce json
// @Param user_id query int true "Account id"
// @Success 200 {object} service.UserDetails
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/details [get]
func (h *DoctorHandler) UserDetails(c echo.Context) error {
	userID, err := queryUserID(c, "user_id")
	if err != nil {
		return err
	}

	details, err := h.doctorService.UserDetails(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, details)
}
