package model

// Category is a named specialization tag shared by doctors and blog posts.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}
