// Package statemachine governs the moderation lifecycle of a review:
// created as PENDING, moved to ACCEPTED or REJECTED by an admin, and reset
// to PENDING by any content edit. Entering ACCEPTED triggers a recomputation
// of the owning restaurant's scores.
package statemachine

import (
	"errors"
	"fmt"

	"dining-review-api/models"
)

// ErrReviewNotFound means the requested review id does not exist.
var ErrReviewNotFound = errors.New("review not found")

// ReviewStore is the persistence capability set the moderation service
// needs. A nil review with a nil error means "not found".
type ReviewStore interface {
	ReviewByID(id uint) (*models.Review, error)
	SaveReview(review *models.Review) error
	DeleteReview(review *models.Review) error
}

// Recomputer recomputes a restaurant's scores from its accepted reviews.
type Recomputer interface {
	Recompute(restaurantID uint, restaurantName string) (*models.Restaurant, error)
}

// AggregationError reports that a review's status change was persisted but
// the recomputation it triggered failed. It carries the restaurant identity
// so the caller can retry the recomputation alone.
type AggregationError struct {
	RestaurantID   uint
	RestaurantName string
	Err            error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("updating scores for restaurant %q (id %d): %v", e.RestaurantName, e.RestaurantID, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// ReviewPatch is a partial content update. Only non-nil fields overwrite the
// stored review.
type ReviewPatch struct {
	PeanutScore *int
	EggScore    *int
	DairyScore  *int
	Commentary  *string
}

// Service drives review lifecycle transitions against the store and hands
// accepted reviews to the aggregation engine.
type Service struct {
	reviews ReviewStore
	engine  Recomputer
}

func NewService(reviews ReviewStore, engine Recomputer) *Service {
	return &Service{reviews: reviews, engine: engine}
}

// Create stores a new review as PENDING. The target restaurant and the
// author are not cross-checked here — a review may reference names that do
// not (yet) exist.
func (s *Service) Create(review models.Review) (*models.Review, error) {
	review.ID = 0
	review.Status = models.StatusPending
	if err := s.reviews.SaveReview(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Edit applies a partial content patch and forces the status back to
// PENDING, whatever state the review was in.
func (s *Service) Edit(id uint, patch ReviewPatch) (*models.Review, error) {
	review, err := s.reviews.ReviewByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	if patch.PeanutScore != nil {
		review.PeanutScore = patch.PeanutScore
	}
	if patch.EggScore != nil {
		review.EggScore = patch.EggScore
	}
	if patch.DairyScore != nil {
		review.DairyScore = patch.DairyScore
	}
	if patch.Commentary != nil {
		review.Commentary = *patch.Commentary
	}
	review.Status = models.StatusPending

	if err := s.reviews.SaveReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// SetStatus maps the raw status string (unrecognised input becomes PENDING),
// persists the transition, and on ACCEPTED recomputes the restaurant's
// scores. A recomputation failure is returned as *AggregationError together
// with the review — the status change is already committed at that point and
// is not rolled back.
func (s *Service) SetStatus(id uint, rawStatus string) (*models.Review, error) {
	review, err := s.reviews.ReviewByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	review.Status = ParseStatus(rawStatus)
	if err := s.reviews.SaveReview(review); err != nil {
		return nil, err
	}

	if review.Status == models.StatusAccepted {
		if _, err := s.engine.Recompute(review.RestaurantID, review.RestaurantName); err != nil {
			return review, &AggregationError{
				RestaurantID:   review.RestaurantID,
				RestaurantName: review.RestaurantName,
				Err:            err,
			}
		}
	}
	return review, nil
}

// Delete removes the review regardless of its state.
func (s *Service) Delete(id uint) (*models.Review, error) {
	review, err := s.reviews.ReviewByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if err := s.reviews.DeleteReview(review); err != nil {
		return nil, err
	}
	return review, nil
}
