package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook/internal/cache"
	"medibook/internal/calendar"
	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// defaultSlot is the event length used when no end time was supplied.
	defaultSlot = 30 * time.Minute
)

// BookAppointmentInput carries one booking request. EndTime may be empty.
type BookAppointmentInput struct {
	PatientID   uint
	DoctorID    uint
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM, optional
	AccessToken string
}

// BookingService coordinates internal persistence with the external calendar
// write. The appointment row is always created before the provider call and is
// never rolled back when that call fails; partial success is modeled
// explicitly via the missing event link.
type BookingService interface {
	BookAppointment(ctx context.Context, in *BookAppointmentInput) (*model.Appointment, error)
}

type bookingService struct {
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	provider        calendar.Provider
	cache           *cache.Client
	timeZone        string
}

// NewBookingService creates a new booking orchestrator.
func NewBookingService(
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	provider calendar.Provider,
	cache *cache.Client,
	timeZone string,
) BookingService {
	return &bookingService{
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		provider:        provider,
		cache:           cache,
		timeZone:        timeZone,
	}
}

func (s *bookingService) BookAppointment(ctx context.Context, in *BookAppointmentInput) (*model.Appointment, error) {
	if in.AccessToken == "" {
		return nil, errors.ErrMissingCredential
	}

	date, start, end, err := parseWindow(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	patient, err := s.userRepo.FindByID(ctx, in.PatientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: patient %d", errors.ErrUserNotFound, in.PatientID)
		}
		return nil, fmt.Errorf("resolve patient: %w", err)
	}

	doctorUser, err := s.userRepo.FindByID(ctx, in.DoctorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: doctor %d", errors.ErrUserNotFound, in.DoctorID)
		}
		return nil, fmt.Errorf("resolve doctor: %w", err)
	}

	// The event location comes from the doctor record; resolving it up front
	// also guarantees the counterpart really is a doctor before any write.
	doctor, err := s.doctorRepo.FindByUserID(ctx, in.DoctorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", errors.ErrDoctorNotFound, in.DoctorID)
		}
		return nil, fmt.Errorf("resolve doctor record: %w", err)
	}

	appointment := &model.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      date,
		StartTime: in.StartTime,
	}
	if in.EndTime != "" {
		endTime := in.EndTime
		appointment.EndTime = &endTime
	}

	// Internal record first. The booking must survive an external failure.
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.invalidateLists(ctx, in.PatientID, in.DoctorID)

	event := &calendar.Event{
		Summary:        "Appointment with Dr. " + doctorUser.FullName(),
		Location:       doctor.EstablishmentName,
		Description:    "Patient: " + patient.FullName(),
		Date:           in.Date,
		StartTime:      start.Format(timeLayout),
		EndTime:        end.Format(timeLayout),
		TimeZone:       s.timeZone,
		AttendeeEmails: []string{patient.Email, doctorUser.Email},
	}

	link, err := s.provider.CreateEvent(ctx, in.AccessToken, event)
	if err != nil {
		return appointment, fmt.Errorf("%w: %v", errors.ErrCalendarSync, err)
	}

	if err := s.appointmentRepo.SetEventLink(ctx, appointment.ID, link); err != nil {
		return appointment, fmt.Errorf("%w: event created but link not stored: %v", errors.ErrCalendarSync, err)
	}
	appointment.GoogleEventLink = &link

	s.invalidateLists(ctx, in.PatientID, in.DoctorID)

	return appointment, nil
}

func (s *bookingService) invalidateLists(ctx context.Context, patientID, doctorID uint) {
	_ = s.cache.Delete(ctx, fmt.Sprintf("appointments:patient:%d", patientID))
	_ = s.cache.Delete(ctx, fmt.Sprintf("appointments:doctor:%d", doctorID))
}

// parseWindow validates the booking window. The end time, when absent,
// defaults to one slot after the start for the calendar mirror only; the
// stored appointment keeps the absent end.
func parseWindow(date, startTime, endTime string) (time.Time, time.Time, time.Time, error) {
	var zero time.Time

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: date must be YYYY-MM-DD", errors.ErrValidation)
	}

	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: start_time must be HH:MM", errors.ErrValidation)
	}

	if endTime == "" {
		return day, start, start.Add(defaultSlot), nil
	}

	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return zero, zero, zero, fmt.Errorf("%w: end_time must be HH:MM", errors.ErrValidation)
	}
	if end.Before(start) {
		return zero, zero, zero, errors.ErrInvalidTimeRange
	}
	return day, start, end, nil
}
