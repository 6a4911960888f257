// Package aggregation keeps a restaurant's scores consistent with the set of
// its currently ACCEPTED reviews.
package aggregation

import (
	"errors"

	"dining-review-api/models"
	"dining-review-api/scores"
)

var (
	// ErrNoAcceptedReviews means recomputation was attempted for a restaurant
	// with zero accepted reviews. The restaurant's existing scores are left
	// untouched.
	ErrNoAcceptedReviews = errors.New("no accepted reviews found")

	// ErrRestaurantNotFound means no restaurant record matches the given id.
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// Store is the persistence capability set the engine needs. It borrows read
// access to the review set and read/write access to one restaurant record
// per recomputation.
type Store interface {
	AcceptedReviews(restaurantName string) ([]models.Review, error)
	RestaurantByID(id uint) (*models.Restaurant, error)
	SaveRestaurant(restaurant *models.Restaurant) error
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Recompute overwrites the restaurant's three allergen scores and overall
// score with averages over its accepted reviews, then persists the record.
// Reviews join by restaurant name; the record itself is loaded by id. The
// operation is idempotent: an unchanged accepted-review set yields the same
// scores. No review record is mutated.
func (e *Engine) Recompute(restaurantID uint, restaurantName string) (*models.Restaurant, error) {
	reviews, err := e.store.AcceptedReviews(restaurantName)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNoAcceptedReviews
	}

	restaurant, err := e.store.RestaurantByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}

	peanut := make([]*int, 0, len(reviews))
	egg := make([]*int, 0, len(reviews))
	dairy := make([]*int, 0, len(reviews))
	for _, r := range reviews {
		peanut = append(peanut, r.PeanutScore)
		egg = append(egg, r.EggScore)
		dairy = append(dairy, r.DairyScore)
	}

	restaurant.PeanutScore = scores.Average(peanut)
	restaurant.EggScore = scores.Average(egg)
	restaurant.DairyScore = scores.Average(dairy)
	restaurant.OverallScore = scores.Overall(restaurant.PeanutScore, restaurant.EggScore, restaurant.DairyScore)

	if err := e.store.SaveRestaurant(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}
