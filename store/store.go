// Package store adapts gorm to the persistence capability set the core
// components consume. Lookups that miss return (nil, nil); callers decide
// whether a miss is an error.
package store

import (
	"errors"

	"dining-review-api/models"

	"gorm.io/gorm"
)

// ErrDuplicateName is returned by the uniqueness guards: restaurant names
// must be unique per zipcode, usernames globally.
var ErrDuplicateName = errors.New("name already taken")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ── Reviews ─────────────────────────────────────────────────────────────────

// AcceptedReviews returns the reviews counted in aggregation for the named
// restaurant.
func (s *Store) AcceptedReviews(restaurantName string) ([]models.Review, error) {
	return s.ReviewsByRestaurantNameAndStatus(restaurantName, models.StatusAccepted)
}

func (s *Store) ReviewsByRestaurantNameAndStatus(restaurantName string, status models.ReviewStatus) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("restaurant_name = ? AND status = ?", restaurantName, status).Find(&reviews).Error
	return reviews, err
}

func (s *Store) ReviewsByStatus(status models.ReviewStatus) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("status = ?", status).Order("created_at asc").Find(&reviews).Error
	return reviews, err
}

func (s *Store) ReviewsByUserName(userName string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_name = ?", userName).Order("created_at desc").Find(&reviews).Error
	return reviews, err
}

func (s *Store) ReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (s *Store) SaveReview(review *models.Review) error {
	return s.db.Save(review).Error
}

func (s *Store) DeleteReview(review *models.Review) error {
	return s.db.Delete(review).Error
}

// ── Restaurants ─────────────────────────────────────────────────────────────

func (s *Store) RestaurantByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

func (s *Store) SaveRestaurant(restaurant *models.Restaurant) error {
	return s.db.Save(restaurant).Error
}

// CreateRestaurant inserts a restaurant after checking the uniqueness guard:
// the (name, zipcode) pair must not already exist.
func (s *Store) CreateRestaurant(restaurant *models.Restaurant) error {
	var count int64
	err := s.db.Model(&models.Restaurant{}).
		Where("name = ? AND zipcode = ?", restaurant.Name, restaurant.Zipcode).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return s.db.Create(restaurant).Error
}

func (s *Store) DeleteRestaurant(restaurant *models.Restaurant) error {
	return s.db.Delete(restaurant).Error
}

// ── Users ───────────────────────────────────────────────────────────────────

func (s *Store) UserByUserName(userName string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user after checking the uniqueness guard: usernames
// are globally unique.
func (s *Store) CreateUser(user *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("user_name = ?", user.UserName).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return s.db.Create(user).Error
}

func (s *Store) SaveUser(user *models.User) error {
	return s.db.Save(user).Error
}

func (s *Store) DeleteUser(user *models.User) error {
	return s.db.Delete(user).Error
}
