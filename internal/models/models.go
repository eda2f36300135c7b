package models

import "time"

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Nombre       string `gorm:"size:255;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"not null"` // bcrypt, never plaintext
	EsAdmin      bool
}

type Class struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Nombre       string
	Horario      time.Time // class date + start time
	CuposMaximos int
}

// Reservation links a user to a class. At most one exists per (user, class)
// pair; reservations are never updated or canceled.
type Reservation struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID  uint `gorm:"not null"`
	ClassID uint `gorm:"not null"`
}
