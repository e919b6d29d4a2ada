package models

import "time"

// Notification is addressed to a user (the client side of a booking).
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title   string `gorm:"size:150;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Link    string `gorm:"size:255" json:"link"`
	Type    string `gorm:"size:50;not null" json:"type"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}

// BarberNotification is addressed to a barber record, not to the barber's user.
type BarberNotification struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title   string `gorm:"size:150;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Link    string `gorm:"size:255" json:"link"`
	Type    string `gorm:"size:50;not null" json:"type"`
	IsRead  bool   `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
