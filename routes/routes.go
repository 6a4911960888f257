package routes

import (
	"dining-review-api/handlers"
	"dining-review-api/middleware"
	"dining-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & profiles (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/search", handlers.SearchRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/users/:userName", handlers.GetUserByUserName)

		// Accepted reviews are the public face of moderation
		public.GET("/reviews/restaurant/:restaurantName", handlers.GetAcceptedReviewsByRestaurant)

		// State machine info (great for docs/Postman)
		public.GET("/moderation/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Profile management
		auth.PUT("/users/:userName", handlers.UpdateUser)
		auth.DELETE("/users/:userName", handlers.DeleteUser)

		// Restaurant management
		auth.POST("/restaurants", handlers.CreateRestaurant)
		auth.PUT("/restaurants/:id", handlers.UpdateRestaurant)
		auth.DELETE("/restaurants/:id", handlers.DeleteRestaurant)

		// Review lifecycle
		auth.POST("/reviews", handlers.CreateReview)
		auth.GET("/reviews/:id", handlers.GetReview)
		auth.GET("/reviews/user/:userName", handlers.GetReviewsByUser)
		auth.PUT("/reviews/:id", handlers.UpdateReview)
		auth.DELETE("/reviews/:id", handlers.DeleteReview)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/reviews", handlers.GetModerationQueue)
		admin.PUT("/reviews/:id/status", handlers.UpdateReviewStatus)
		admin.POST("/restaurants/:id/recompute", handlers.RecomputeRestaurantScores)
	}
}
