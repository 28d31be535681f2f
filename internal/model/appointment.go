package model

import "time"

// Appointment represents a scheduled meeting between a patient and a doctor.
// Rows are immutable after creation except for GoogleEventLink, which is set
// once the external calendar mirror confirms the event. A nil link means the
// internal record exists but external sync did not complete.
type Appointment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PatientID       uint      `json:"patient_id" gorm:"not null;index"`
	DoctorID        uint      `json:"doctor_id" gorm:"not null;index"`
	Date            time.Time `json:"date" gorm:"type:date;not null;index"`
	StartTime       string    `json:"start_time" gorm:"size:5;not null"` // HH:MM wall clock
	EndTime         *string   `json:"end_time,omitempty" gorm:"size:5"`
	GoogleEventLink *string   `json:"google_event_link,omitempty" gorm:"size:255"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Patient User `json:"-" gorm:"foreignKey:PatientID"`
	Doctor  User `json:"-" gorm:"foreignKey:DoctorID"`
}
