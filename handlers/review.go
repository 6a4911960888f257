package handlers

import (
	"errors"
	"net/http"

	"dining-review-api/aggregation"
	"dining-review-api/middleware"
	"dining-review-api/models"
	"dining-review-api/statemachine"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	RestaurantID   uint   `json:"restaurant_id" binding:"required"`
	RestaurantName string `json:"restaurant_name" binding:"required"`
	PeanutScore    *int   `json:"peanut_score" binding:"omitempty,min=1,max=5"`
	EggScore       *int   `json:"egg_score" binding:"omitempty,min=1,max=5"`
	DairyScore     *int   `json:"dairy_score" binding:"omitempty,min=1,max=5"`
	Commentary     string `json:"commentary"`
}

// CreateReview submits a review on behalf of the caller. It always starts
// PENDING and waits for moderation; the referenced restaurant is not
// cross-checked here.
func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := moderation.Create(models.Review{
		UserName:       middleware.GetUserName(c),
		RestaurantID:   req.RestaurantID,
		RestaurantName: req.RestaurantName,
		PeanutScore:    req.PeanutScore,
		EggScore:       req.EggScore,
		DairyScore:     req.DairyScore,
		Commentary:     req.Commentary,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted for moderation", "review": review})
}

// GetReview returns a single review by id
func GetReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	review, err := data.ReviewByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up review"})
		return
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// GetAcceptedReviewsByRestaurant returns the accepted reviews for a
// restaurant name — the set its scores are computed from
func GetAcceptedReviewsByRestaurant(c *gin.Context) {
	reviews, err := data.AcceptedReviews(c.Param("restaurantName"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up reviews"})
		return
	}
	if len(reviews) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No accepted reviews found for this restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// GetReviewsByUser returns all reviews written by a user
func GetReviewsByUser(c *gin.Context) {
	reviews, err := data.ReviewsByUserName(c.Param("userName"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up reviews"})
		return
	}
	if len(reviews) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reviews found for this user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

type UpdateReviewRequest struct {
	PeanutScore *int    `json:"peanut_score" binding:"omitempty,min=1,max=5"`
	EggScore    *int    `json:"egg_score" binding:"omitempty,min=1,max=5"`
	DairyScore  *int    `json:"dairy_score" binding:"omitempty,min=1,max=5"`
	Commentary  *string `json:"commentary"`
}

// UpdateReview lets the author revise scores or commentary. Only provided
// fields change, and the review goes back to PENDING whatever state it was
// in.
func UpdateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !callerOwnsReview(c, id) {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := moderation.Edit(id, statemachine.ReviewPatch{
		PeanutScore: req.PeanutScore,
		EggScore:    req.EggScore,
		DairyScore:  req.DairyScore,
		Commentary:  req.Commentary,
	})
	if err != nil {
		if errors.Is(err, statemachine.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated and returned to moderation", "review": review})
}

// DeleteReview removes a review in any state — the author or an admin
func DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !callerOwnsReview(c, id) {
		return
	}

	review, err := moderation.Delete(id)
	if err != nil {
		if errors.Is(err, statemachine.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted", "review": review})
}

// GetModerationQueue lists reviews by status for admins, defaulting to the
// PENDING queue
func GetModerationQueue(c *gin.Context) {
	status := statemachine.ParseStatus(c.Query("status"))
	reviews, err := data.ReviewsByStatus(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "count": len(reviews), "reviews": reviews})
}

type UpdateReviewStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReviewStatus is the admin moderation decision. The raw status maps
// case-insensitively; anything unrecognised parks the review back at
// PENDING. Accepting a review recomputes the restaurant's scores — if that
// recomputation fails the status change still stands and the response names
// the restaurant so the recompute can be retried on its own.
func UpdateReviewStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := moderation.SetStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, statemachine.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		var aggErr *statemachine.AggregationError
		if errors.As(err, &aggErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":           "Review status was saved but restaurant scores could not be updated",
				"reason":          aggErr.Err.Error(),
				"restaurant_id":   aggErr.RestaurantID,
				"restaurant_name": aggErr.RestaurantName,
				"review":          review,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review status updated", "review": review})
}

// RecomputeRestaurantScores re-runs aggregation for one restaurant — the
// retry path when an acceptance-time recomputation failed
func RecomputeRestaurantScores(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	restaurant, err := data.RestaurantByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up restaurant"})
		return
	}
	if restaurant == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	updated, err := engine.Recompute(restaurant.ID, restaurant.Name)
	if err != nil {
		if errors.Is(err, aggregation.ErrNoAcceptedReviews) {
			c.JSON(http.StatusConflict, gin.H{"error": "No accepted reviews to aggregate; existing scores left unchanged"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute scores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant scores recomputed", "restaurant": updated})
}

// GetStateMachineInfo returns the review lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":  statemachine.GetAllTransitions(),
		"initial_state":  models.StatusPending,
		"description":    "Review Moderation Lifecycle State Machine",
		"status_mapping": "set-status input is case-insensitive; unrecognised values map to PENDING",
	})
}

// callerOwnsReview loads the review and checks the caller is its author or
// an admin, writing the error response itself when not
func callerOwnsReview(c *gin.Context, id uint) bool {
	review, err := data.ReviewByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up review"})
		return false
	}
	if review == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return false
	}
	if review.UserName != middleware.GetUserName(c) && middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own reviews"})
		return false
	}
	return true
}
