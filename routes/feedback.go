package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/middleware"
	"recircuit-server/models"
)

// RegisterFeedbackRoutes registers the authenticated feedback routes
func RegisterFeedbackRoutes(router *gin.RouterGroup) {
	router.POST("", SubmitFeedback)
	router.GET("/mine", GetMyFeedback)
	router.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    models.AllFeedbackCategories,
		})
	})
}

// SubmitFeedback stores a new feedback entry from the signed-in user
func SubmitFeedback(c *gin.Context) {
	var req models.FeedbackCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing information",
			"message": "Please fill in all required fields",
		})
		return
	}

	if !models.IsValidFeedbackCategory(req.FeedbackType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid feedback category",
			"message": "feedback_type must be one of the offered categories",
		})
		return
	}

	userID := c.GetUint("user_id")

	feedback := models.Feedback{
		UserID:       userID,
		FeedbackType: models.FeedbackCategory(req.FeedbackType),
		Subject:      middleware.SanitizeInput(req.Subject),
		Message:      strings.TrimSpace(req.Message),
		Rating:       req.Rating,
		Status:       models.FeedbackStatusPending,
	}

	if err := database.DB.Create(&feedback).Error; err != nil {
		log.Printf("❌ Feedback creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Submission failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your feedback! We'll review it soon.",
		"data":    feedback,
	})
}

// GetMyFeedback returns the signed-in user's feedback entries
func GetMyFeedback(c *gin.Context) {
	userID := c.GetUint("user_id")

	var feedback []models.Feedback
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch feedback",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedback,
	})
}
