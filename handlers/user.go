package handlers

import (
	"net/http"

	"dining-review-api/middleware"
	"dining-review-api/models"

	"github.com/gin-gonic/gin"
)

// GetUserByUserName returns a user's public profile
func GetUserByUserName(c *gin.Context) {
	user, err := data.UserByUserName(c.Param("userName"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateUserRequest struct {
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zipcode       *string `json:"zipcode"`
	PeanutAllergy *bool   `json:"peanut_allergy"`
	EggAllergy    *bool   `json:"egg_allergy"`
	DairyAllergy  *bool   `json:"dairy_allergy"`
}

// UpdateUser updates a profile without changing the username. A new username
// in the payload is ignored; only the fields present here are applied.
func UpdateUser(c *gin.Context) {
	userName := c.Param("userName")
	if middleware.GetUserName(c) != userName {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	user, err := data.UserByUserName(userName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.Zipcode != nil {
		user.Zipcode = *req.Zipcode
	}
	if req.PeanutAllergy != nil {
		user.PeanutAllergy = *req.PeanutAllergy
	}
	if req.EggAllergy != nil {
		user.EggAllergy = *req.EggAllergy
	}
	if req.DairyAllergy != nil {
		user.DairyAllergy = *req.DairyAllergy
	}

	if err := data.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

// DeleteUser removes an account — the owner or an admin
func DeleteUser(c *gin.Context) {
	userName := c.Param("userName")
	if middleware.GetUserName(c) != userName && middleware.GetRole(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own account"})
		return
	}

	user, err := data.UserByUserName(userName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := data.DeleteUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "user": user})
}
