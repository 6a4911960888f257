package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleReviewer UserRole = "reviewer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserName      string    `json:"user_name" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	Role          UserRole  `json:"role" gorm:"not null;default:'reviewer'"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Zipcode       string    `json:"zipcode"`
	PeanutAllergy bool      `json:"peanut_allergy"`
	EggAllergy    bool      `json:"egg_allergy"`
	DairyAllergy  bool      `json:"dairy_allergy"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
