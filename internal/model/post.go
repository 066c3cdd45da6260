package model

import "time"

// Post is a blog entry. Every post references exactly one author; the
// foreign key keeps the reference valid for the post's entire lifetime.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relations
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}
