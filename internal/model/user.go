package model

import "time"

// Role identifies which side of a booking an account acts on.
// Storage keeps the two flags the identity layer has always used; Role is the
// domain-level view and is fixed at registration.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// User represents an authenticated account in the platform.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"size:100;not null"`
	LastName     string    `json:"last_name" gorm:"size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsPatient    bool      `json:"is_patient" gorm:"default:false;index"`
	IsDoctor     bool      `json:"is_doctor" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullName returns the display name used on calendar events and projections.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Role returns the account's active role.
func (u *User) Role() Role {
	if u.IsDoctor {
		return RoleDoctor
	}
	return RolePatient
}
