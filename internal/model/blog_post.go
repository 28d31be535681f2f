package model

import "time"

// BlogPost is an article authored by a doctor.
type BlogPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:200"`
	Image     string    `json:"image" gorm:"size:255"`
	Summary   string    `json:"summary" gorm:"size:600"`
	Content   string    `json:"content" gorm:"type:text"`
	Draft     bool      `json:"draft" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author     Doctor     `json:"author" gorm:"foreignKey:AuthorID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:blog_post_categories"`
}
