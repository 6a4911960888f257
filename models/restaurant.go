package models

import "time"

// Restaurant carries four aggregate allergy-safety scores. A nil score means
// no accepted review has rated that allergen yet — distinct from zero.
type Restaurant struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;uniqueIndex:idx_restaurant_name_zipcode"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zipcode      string    `json:"zipcode" gorm:"uniqueIndex:idx_restaurant_name_zipcode"`
	PeanutScore  *float64  `json:"peanut_score"`
	EggScore     *float64  `json:"egg_score"`
	DairyScore   *float64  `json:"dairy_score"`
	OverallScore *float64  `json:"overall_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
