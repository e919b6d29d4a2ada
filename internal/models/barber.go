package models

import "time"

// Barber is the schedulable side of a user with the barber role.
// WorkingHours holds "HH:mm-HH:mm" in the reference zone; nil means the default window.
type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	WorkingHours *string `gorm:"size:11" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
