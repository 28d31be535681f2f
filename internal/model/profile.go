package model

import "time"

// DefaultAvatar is the placeholder asset used when no picture was uploaded.
const DefaultAvatar = "profile-default.png"

// Profile holds address and avatar data attached 1:1 to a User.
type Profile struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	ProfilePicture string    `json:"profile_picture" gorm:"size:255;not null;default:'profile-default.png'"`
	Address        string    `json:"address" gorm:"size:255;not null"`
	City           string    `json:"city" gorm:"size:100;not null"`
	State          string    `json:"state" gorm:"size:100;not null"`
	Pincode        int       `json:"pincode" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	User          User    `json:"-" gorm:"foreignKey:UserID"`
	DoctorProfile *Doctor `json:"doctor_profile,omitempty" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}
