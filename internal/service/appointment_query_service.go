package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook/internal/cache"
	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

// appointmentListTTL bounds staleness of cached appointment projections;
// writes invalidate eagerly as well.
const appointmentListTTL = time.Minute

// AppointmentView is the per-record projection for either participant's list.
// Duration is omitted, not zeroed, when the appointment has no end time.
type AppointmentView struct {
	ID                uint    `json:"id"`
	Date              string  `json:"date"`
	StartTime         string  `json:"start_time"`
	EndTime           *string `json:"end_time,omitempty"`
	Duration          *string `json:"duration,omitempty"`
	GoogleEventLink   *string `json:"google_event_link,omitempty"`
	CounterpartName   string  `json:"counterpart_name"`
	CounterpartAvatar string  `json:"counterpart_avatar"`
	EstablishmentName string  `json:"establishment_name,omitempty"`
}

// AppointmentQueryService serves the read-side projections for both
// participants. An account with no appointments gets an empty list; only an
// unresolvable account id is an error.
type AppointmentQueryService interface {
	ListByPatient(ctx context.Context, patientID uint) ([]AppointmentView, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]AppointmentView, error)
}

type appointmentQueryService struct {
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	cache           *cache.Client
	defaultAvatar   string
}

// NewAppointmentQueryService creates a new appointment query service.
func NewAppointmentQueryService(
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	cache *cache.Client,
	defaultAvatar string,
) AppointmentQueryService {
	return &appointmentQueryService{
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
		defaultAvatar:   defaultAvatar,
	}
}

func (s *appointmentQueryService) ListByPatient(ctx context.Context, patientID uint) ([]AppointmentView, error) {
	return s.list(ctx, patientID, fmt.Sprintf("appointments:patient:%d", patientID), func(ctx context.Context) ([]model.Appointment, error) {
		return s.appointmentRepo.ListByPatientID(ctx, patientID)
	}, s.doctorSideView)
}

func (s *appointmentQueryService) ListByDoctor(ctx context.Context, doctorID uint) ([]AppointmentView, error) {
	// Every row on a doctor's list shares that doctor's own establishment.
	establishment := ""
	if doctor, err := s.doctorRepo.FindByUserID(ctx, doctorID); err == nil {
		establishment = doctor.EstablishmentName
	}
	return s.list(ctx, doctorID, fmt.Sprintf("appointments:doctor:%d", doctorID), func(ctx context.Context) ([]model.Appointment, error) {
		return s.appointmentRepo.ListByDoctorID(ctx, doctorID)
	}, func(a *model.Appointment) AppointmentView {
		view := s.patientSideView(a)
		view.EstablishmentName = establishment
		return view
	})
}

func (s *appointmentQueryService) list(
	ctx context.Context,
	userID uint,
	cacheKey string,
	load func(ctx context.Context) ([]model.Appointment, error),
	project func(a *model.Appointment) AppointmentView,
) ([]AppointmentView, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", errors.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
		var cached []AppointmentView
		if json.Unmarshal(data, &cached) == nil {
			return cached, nil
		}
	}

	appointments, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	views := make([]AppointmentView, 0, len(appointments))
	for i := range appointments {
		views = append(views, project(&appointments[i]))
	}

	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, cacheKey, payload, appointmentListTTL)
	}

	return views, nil
}

// doctorSideView projects the doctor as counterpart for a patient's list.
func (s *appointmentQueryService) doctorSideView(a *model.Appointment) AppointmentView {
	view := s.baseView(a)
	view.CounterpartName = a.Doctor.FullName()
	view.CounterpartAvatar = s.avatarOf(a.Doctor.Profile)
	if a.Doctor.Profile != nil && a.Doctor.Profile.DoctorProfile != nil {
		view.EstablishmentName = a.Doctor.Profile.DoctorProfile.EstablishmentName
	}
	return view
}

// patientSideView projects the patient as counterpart for a doctor's list.
func (s *appointmentQueryService) patientSideView(a *model.Appointment) AppointmentView {
	view := s.baseView(a)
	view.CounterpartName = a.Patient.FullName()
	view.CounterpartAvatar = s.avatarOf(a.Patient.Profile)
	return view
}

func (s *appointmentQueryService) baseView(a *model.Appointment) AppointmentView {
	return AppointmentView{
		ID:              a.ID,
		Date:            a.Date.Format(dateLayout),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Duration:        deriveDuration(a.StartTime, a.EndTime),
		GoogleEventLink: a.GoogleEventLink,
	}
}

func (s *appointmentQueryService) avatarOf(profile *model.Profile) string {
	if profile == nil || profile.ProfilePicture == "" {
		return s.defaultAvatar
	}
	return profile.ProfilePicture
}

// deriveDuration computes the wall-clock span as "H hours, M minutes".
// It returns nil when the end time is absent or either time fails to parse.
func deriveDuration(startTime string, endTime *string) *string {
	if endTime == nil {
		return nil
	}
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(timeLayout, *endTime)
	if err != nil {
		return nil
	}

	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return nil
	}
	formatted := fmt.Sprintf("%d hours, %d minutes", minutes/60, minutes%60)
	return &formatted
}
