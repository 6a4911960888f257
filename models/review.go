package models

import "time"

// ReviewStatus represents all possible moderation states of a review
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "PENDING"
	StatusAccepted ReviewStatus = "ACCEPTED"
	StatusRejected ReviewStatus = "REJECTED"
)

// Review is a single user's allergy-safety assessment of a restaurant.
// RestaurantID is the stable reference used to load the record during
// aggregation; RestaurantName is the indexed join key the accepted-review
// query matches on. Nil allergen scores mean "not rated".
type Review struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	UserName       string       `json:"user_name" gorm:"index;not null"`
	RestaurantID   uint         `json:"restaurant_id"`
	RestaurantName string       `json:"restaurant_name" gorm:"index;not null"`
	PeanutScore    *int         `json:"peanut_score"`
	EggScore       *int         `json:"egg_score"`
	DairyScore     *int         `json:"dairy_score"`
	Commentary     string       `json:"commentary"`
	Status         ReviewStatus `json:"status" gorm:"not null;default:'PENDING'"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
