package model

import "time"

// Doctor holds specialization data attached 1:1 to a Profile.
// Present only for accounts registered with the doctor role.
type Doctor struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ProfileID         uint      `json:"profile_id" gorm:"uniqueIndex;not null"`
	EstablishmentName string    `json:"establishment_name" gorm:"size:255"`
	LicenseNumber     string    `json:"license_number" gorm:"size:100"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Profile    Profile    `json:"-" gorm:"foreignKey:ProfileID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:doctor_categories"`
}
