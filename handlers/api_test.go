package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dining-review-api/aggregation"
	"dining-review-api/config"
	"dining-review-api/handlers"
	"dining-review-api/models"
	"dining-review-api/routes"
	"dining-review-api/statemachine"
	"dining-review-api/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Review{}))

	config.DB = db
	st := store.New(db)
	engine := aggregation.NewEngine(st)
	moderation := statemachine.NewService(st, engine)
	handlers.Init(st, engine, moderation)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerUser(t *testing.T, r *gin.Engine, userName string, role models.UserRole) string {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"user_name": userName,
		"password":  "secret123",
		"role":      role,
		"zipcode":   "12345",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestReviewModerationFlow(t *testing.T) {
	r := setupTestAPI(t)

	alice := registerUser(t, r, "alice", models.RoleReviewer)
	bob := registerUser(t, r, "bob", models.RoleReviewer)
	admin := registerUser(t, r, "mod", models.RoleAdmin)

	// Restaurant starts with no scores at all
	w, resp := doJSON(t, r, http.MethodPost, "/api/restaurants", alice, gin.H{
		"name":    "Thai Basil",
		"city":    "Springfield",
		"state":   "IL",
		"zipcode": "12345",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	restaurant := resp["restaurant"].(map[string]any)
	restaurantID := uint(restaurant["id"].(float64))
	assert.Nil(t, restaurant["overall_score"])

	// R1: peanut=4, dairy=2, egg not rated
	w, resp = doJSON(t, r, http.MethodPost, "/api/reviews", alice, gin.H{
		"restaurant_id":   restaurantID,
		"restaurant_name": "Thai Basil",
		"peanut_score":    4,
		"dairy_score":     2,
		"commentary":      "told the kitchen about my peanut allergy, they handled it",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	review1 := resp["review"].(map[string]any)
	review1ID := uint(review1["id"].(float64))
	assert.Equal(t, string(models.StatusPending), review1["status"])

	// R2: peanut=2, egg=3, dairy not rated
	w, resp = doJSON(t, r, http.MethodPost, "/api/reviews", bob, gin.H{
		"restaurant_id":   restaurantID,
		"restaurant_name": "Thai Basil",
		"peanut_score":    2,
		"egg_score":       3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	review2ID := uint(resp["review"].(map[string]any)["id"].(float64))

	// A reviewer cannot reach the moderation queue
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/reviews", alice, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Both reviews sit in the pending queue
	w, resp = doJSON(t, r, http.MethodGet, "/api/admin/reviews", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["count"])

	// Accept R1: scores come only from it
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d/status", review1ID), admin, gin.H{"status": "Accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurantID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	restaurant = resp["restaurant"].(map[string]any)
	assert.Equal(t, 4.0, restaurant["peanut_score"])
	assert.Nil(t, restaurant["egg_score"])
	assert.Equal(t, 2.0, restaurant["dairy_score"])
	assert.Equal(t, 3.0, restaurant["overall_score"])

	// Accept R2: averages over present values only, overall display-rounded
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d/status", review2ID), admin, gin.H{"status": "ACCEPTED"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/restaurants/%d", restaurantID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	restaurant = resp["restaurant"].(map[string]any)
	assert.Equal(t, 3.0, restaurant["peanut_score"])
	assert.Equal(t, 3.0, restaurant["egg_score"])
	assert.Equal(t, 2.0, restaurant["dairy_score"])
	assert.Equal(t, 2.67, restaurant["overall_score"])

	// The accepted set is publicly visible by restaurant name
	w, resp = doJSON(t, r, http.MethodGet, "/api/reviews/restaurant/Thai%20Basil", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp["count"])

	// Editing an accepted review sends it back to moderation
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", review1ID), alice, gin.H{"commentary": "second visit went worse"})
	require.Equal(t, http.StatusOK, w.Code)
	edited := resp["review"].(map[string]any)
	assert.Equal(t, string(models.StatusPending), edited["status"])
	assert.Equal(t, 4.0, edited["peanut_score"], "untouched score fields survive the edit")

	// Bob cannot edit Alice's review
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/reviews/%d", review1ID), bob, gin.H{"commentary": "hijack"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// An unrecognised status parks the review at PENDING
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d/status", review2ID), admin, gin.H{"status": "banana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.StatusPending), resp["review"].(map[string]any)["status"])
}

func TestAcceptReviewForMissingRestaurantKeepsStatus(t *testing.T) {
	r := setupTestAPI(t)

	alice := registerUser(t, r, "alice", models.RoleReviewer)
	admin := registerUser(t, r, "mod", models.RoleAdmin)

	// Review creation performs no cross-reference checks
	w, resp := doJSON(t, r, http.MethodPost, "/api/reviews", alice, gin.H{
		"restaurant_id":   999,
		"restaurant_name": "Ghost Kitchen",
		"peanut_score":    5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := uint(resp["review"].(map[string]any)["id"].(float64))

	// Acceptance persists, but the triggered aggregation fails loudly
	w, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/reviews/%d/status", reviewID), admin, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, float64(999), resp["restaurant_id"])
	assert.Equal(t, "Ghost Kitchen", resp["restaurant_name"])

	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/reviews/%d", reviewID), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.StatusAccepted), resp["review"].(map[string]any)["status"])
}

func TestManualRecomputeWithoutAcceptedReviews(t *testing.T) {
	r := setupTestAPI(t)

	alice := registerUser(t, r, "alice", models.RoleReviewer)
	admin := registerUser(t, r, "mod", models.RoleAdmin)

	w, resp := doJSON(t, r, http.MethodPost, "/api/restaurants", alice, gin.H{
		"name":    "Empty Plate",
		"zipcode": "12345",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	restaurantID := uint(resp["restaurant"].(map[string]any)["id"].(float64))

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/restaurants/%d/recompute", restaurantID), admin, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/restaurants/999/recompute", admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuplicateGuardsAtTheAPI(t *testing.T) {
	r := setupTestAPI(t)

	alice := registerUser(t, r, "alice", models.RoleReviewer)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"user_name": "alice",
		"password":  "another123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/restaurants", alice, gin.H{"name": "Thai Basil", "zipcode": "12345"})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/restaurants", alice, gin.H{"name": "Thai Basil", "zipcode": "12345"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRestaurantsValidation(t *testing.T) {
	r := setupTestAPI(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/restaurants/search?zipcode=123&allergy=peanut", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/restaurants/search?zipcode=12345&allergy=gluten", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/api/restaurants/search?zipcode=12345&allergy=PEANUT", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["count"])
}
