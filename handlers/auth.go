package handlers

import (
	"errors"
	"net/http"

	"dining-review-api/middleware"
	"dining-review-api/models"
	"dining-review-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	UserName      string          `json:"user_name" binding:"required"`
	Password      string          `json:"password" binding:"required,min=6"`
	Role          models.UserRole `json:"role"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Zipcode       string          `json:"zipcode"`
	PeanutAllergy bool            `json:"peanut_allergy"`
	EggAllergy    bool            `json:"egg_allergy"`
	DairyAllergy  bool            `json:"dairy_allergy"`
}

type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new reviewer account. Usernames are globally unique and
// never change after signup.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleReviewer
	}
	if role != models.RoleReviewer && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: reviewer or admin"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		UserName:      req.UserName,
		PasswordHash:  string(hash),
		Role:          role,
		City:          req.City,
		State:         req.State,
		Zipcode:       req.Zipcode,
		PeanutAllergy: req.PeanutAllergy,
		EggAllergy:    req.EggAllergy,
		DairyAllergy:  req.DairyAllergy,
	}

	if err := data.CreateUser(&user); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is taken. Please choose a unique username."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := data.UserByUserName(req.UserName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user, err := data.UserByUserName(middleware.GetUserName(c))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
