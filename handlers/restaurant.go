package handlers

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strings"

	"dining-review-api/config"
	"dining-review-api/models"
	"dining-review-api/scores"
	"dining-review-api/store"

	"github.com/gin-gonic/gin"
)

var zipcodeRe = regexp.MustCompile(`^\d{5}$`)

type CreateRestaurantRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode" binding:"required"`
}

// CreateRestaurant registers a restaurant with no scores yet. Scores only
// appear once accepted reviews are aggregated.
func CreateRestaurant(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		Name:    req.Name,
		City:    req.City,
		State:   req.State,
		Zipcode: req.Zipcode,
	}
	if err := data.CreateRestaurant(&restaurant); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant name must be unique for a given zipcode."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// ListRestaurants returns all restaurants, optionally filtered by city,
// state or zipcode. Scores are rounded for display only.
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	if zipcode := c.Query("zipcode"); zipcode != "" {
		query = query.Where("zipcode = ?", zipcode)
	}

	query.Find(&restaurants)
	for i := range restaurants {
		restaurants[i] = withDisplayScores(restaurants[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with display-rounded scores
func GetRestaurant(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"restaurant": withDisplayScores(*restaurant)})
}

// SearchRestaurants finds restaurants in a zipcode ranked by one allergen
// score, best first. Restaurants without a signal for that allergen are
// excluded.
func SearchRestaurants(c *gin.Context) {
	zipcode := c.Query("zipcode")
	if !zipcodeRe.MatchString(zipcode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zipcode. Zipcode must be 5 digits."})
		return
	}

	allergy := strings.ToLower(c.Query("allergy"))
	column := ""
	switch allergy {
	case "peanut":
		column = "peanut_score"
	case "egg":
		column = "egg_score"
	case "dairy":
		column = "dairy_score"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid allergy. Allergy must be peanut, egg, or dairy."})
		return
	}

	var restaurants []models.Restaurant
	config.DB.Where("zipcode = ? AND "+column+" > 0", zipcode).
		Order(column + " desc").
		Find(&restaurants)
	for i := range restaurants {
		restaurants[i] = withDisplayScores(restaurants[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

type UpdateRestaurantRequest struct {
	Name        string   `json:"name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zipcode     string   `json:"zipcode"`
	PeanutScore *float64 `json:"peanut_score"`
	EggScore    *float64 `json:"egg_score"`
	DairyScore  *float64 `json:"dairy_score"`
}

// UpdateRestaurant applies the provided fields only. The overall score is a
// derived value: it is always recomputed from the allergen scores here and
// never accepted from the payload.
func UpdateRestaurant(c *gin.Context) {
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

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		restaurant.Name = req.Name
	}
	if req.City != "" {
		restaurant.City = req.City
	}
	if req.State != "" {
		restaurant.State = req.State
	}
	if req.Zipcode != "" {
		restaurant.Zipcode = req.Zipcode
	}
	if req.PeanutScore != nil {
		restaurant.PeanutScore = req.PeanutScore
	}
	if req.EggScore != nil {
		restaurant.EggScore = req.EggScore
	}
	if req.DairyScore != nil {
		restaurant.DairyScore = req.DairyScore
	}
	restaurant.OverallScore = scores.Overall(restaurant.PeanutScore, restaurant.EggScore, restaurant.DairyScore)

	if err := data.SaveRestaurant(restaurant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// DeleteRestaurant removes a restaurant record
func DeleteRestaurant(c *gin.Context) {
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
	if err := data.DeleteRestaurant(restaurant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted", "restaurant": restaurant})
}

// withDisplayScores returns a copy with scores rounded to two decimals.
// Stored scores keep full precision; rounding is presentation only.
func withDisplayScores(r models.Restaurant) models.Restaurant {
	r.PeanutScore = round2(r.PeanutScore)
	r.EggScore = round2(r.EggScore)
	r.DairyScore = round2(r.DairyScore)
	r.OverallScore = round2(r.OverallScore)
	return r
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	rounded := math.Round(*v*100) / 100
	return &rounded
}
