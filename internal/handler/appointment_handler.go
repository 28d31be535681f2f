package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// AppointmentHandler handles booking and appointment listing endpoints.
type AppointmentHandler struct {
	bookingService      service.BookingService
	queryService        service.AppointmentQueryService
	calendarAuthService service.CalendarAuthService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(
	bookingService service.BookingService,
	queryService service.AppointmentQueryService,
	calendarAuthService service.CalendarAuthService,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService:      bookingService,
		queryService:        queryService,
		calendarAuthService: calendarAuthService,
	}
}

// BookAppointmentRequest represents a booking request. The patient defaults to
// the authenticated account when patient_id is omitted; the access token falls
// back to the cached calendar credential when omitted.
type BookAppointmentRequest struct {
	AccessToken string `json:"access_token"`
	PatientID   uint   `json:"patient_id"`
	DoctorID    uint   `json:"doctor_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time"`
}

// Book godoc
// @Summary Book an appointment and mirror it to the doctor's calendar
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body BookAppointmentRequest true "Booking data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patientID := req.PatientID
	if patientID == 0 {
		patientID = userID
	}

	accessToken, err := h.calendarAuthService.ResolveAccessToken(c.Request().Context(), userID, req.AccessToken)
	if err != nil {
		return domainError(err)
	}

	_, err = h.bookingService.BookAppointment(c.Request().Context(), &service.BookAppointmentInput{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AccessToken: accessToken,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Appointment created successfully"})
}

// ListByPatient godoc
// @Summary List appointments for a patient, most recent first
// @Tags appointments
// @Produce json
// @Param user_id query int true "Patient account id"
// @Success 200 {array} service.AppointmentView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) ListByPatient(c echo.Context) error {
	userID, err := queryUserID(c, "user_id")
	if err != nil {
		return err
	}

	views, err := h.queryService.ListByPatient(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, views)
}

// ListByDoctor godoc
// @Summary List appointments for a doctor, most recent first
// @Tags appointments
// @Produce json
// @Param user_id query int true "Doctor account id"
// @Success 200 {array} service.AppointmentView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /doc-appointments [get]
func (h *AppointmentHandler) ListByDoctor(c echo.Context) error {
	userID, err := queryUserID(c, "user_id")
	if err != nil {
		return err
	}

	views, err := h.queryService.ListByDoctor(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, views)
}
