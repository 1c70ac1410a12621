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

// RegisterContactRoutes registers the public contact form routes
func RegisterContactRoutes(router *gin.RouterGroup) {
	router.POST("", SubmitContactMessage)
	router.GET("/info", GetContactInfo)
}

// SubmitContactMessage stores a message from the public contact form
func SubmitContactMessage(c *gin.Context) {
	var req models.ContactMessageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing information",
			"message": "Please fill in all required fields",
		})
		return
	}

	message := models.ContactMessage{
		Name:    middleware.SanitizeInput(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Subject: middleware.SanitizeInput(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Contact message creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Submission failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent! We'll get back to you within 24 hours.",
	})
}

// GetContactInfo returns the static contact details shown on the contact page
func GetContactInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"email":   "support@recircuit.eco",
			"phone":   "+1 (555) 123-4567",
			"address": "123 Green Street, Eco City, EC 12345",
			"hours":   "Mon-Fri 9AM-6PM",
		},
	})
}
