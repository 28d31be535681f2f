package repository

import (
	"context"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	// SetEventLink records the external calendar event reference. This is the
	// only permitted mutation of an appointment after creation.
	SetEventLink(ctx context.Context, id uint, link string) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	ListByPatientID(ctx context.Context, patientID uint) ([]model.Appointment, error)
	ListByDoctorID(ctx context.Context, doctorID uint) ([]model.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment record.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// SetEventLink writes the external event link onto an existing appointment.
func (r *appointmentRepository) SetEventLink(ctx context.Context, id uint, link string) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("google_event_link", link).Error
}

// FindByID finds an appointment by ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListByPatientID lists a patient's appointments, most recent date first, with
// the doctor side of each record resolved down to the establishment.
func (r *appointmentRepository) ListByPatientID(ctx context.Context, patientID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Doctor").
		Preload("Doctor.Profile").
		Preload("Doctor.Profile.DoctorProfile").
		Order("date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListByDoctorID lists a doctor's appointments, most recent date first, with
// the patient side of each record resolved.
func (r *appointmentRepository) ListByDoctorID(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Preload("Patient").
		Preload("Patient.Profile").
		Order("date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
