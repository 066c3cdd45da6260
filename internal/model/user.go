package model

import "time"

// User represents a registered author. Usernames are unique and immutable
// after registration.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}
