package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/middleware"
	"recircuit-server/models"
	"recircuit-server/services"
)

// RegisterAdminRoutes registers the admin console routes
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", GetAdminDashboardStats)
	router.GET("/users", GetAllUsers)
	router.PATCH("/users/:id/role", UpdateUserRole)
	router.PATCH("/users/:id/status", UpdateUserStatus)
	router.GET("/pickup-requests", GetAllPickupRequests)
	router.GET("/feedback", GetAllFeedback)
	router.PATCH("/feedback/:id", ModerateFeedback)
	router.GET("/contact-messages", GetContactMessages)
}

// GetAdminDashboardStats returns the admin overview: all requests and all
// profiles reduced into buckets, plus the feedback moderation backlog
func GetAdminDashboardStats(c *gin.Context) {
	var requests []models.PickupRequest
	if err := database.DB.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch pickup requests",
			"message": err.Error(),
		})
		return
	}

	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch users",
			"message": err.Error(),
		})
		return
	}

	var pendingFeedback int64
	if err := database.DB.Model(&models.Feedback{}).
		Where("status = ?", models.FeedbackStatusPending).
		Count(&pendingFeedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch feedback count",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"requests":         services.SummarizeRequestStatuses(requests),
			"roles":            services.SummarizeProfileRoles(users),
			"device_types":     services.SummarizeDeviceTypes(requests),
			"pending_feedback": pendingFeedback,
		},
	})
}

// GetAllUsers returns every user account, newest first
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch users",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"count":   len(users),
	})
}

// UpdateUserRole assigns a role tag to a user account
func UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID",
			"message": "User ID must be a number",
		})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	role := models.UserRole(strings.TrimSpace(req.Role))
	valid := false
	for _, r := range models.AllRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role",
			"message": "role must be one of the known role tags",
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "User not found",
		})
		return
	}

	adminID := c.GetUint("user_id")
	if user.ID == adminID && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cannot demote yourself",
			"message": "Admins cannot remove their own admin role",
		})
		return
	}

	user.Role = role
	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("❌ Role update failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update role",
			"message": err.Error(),
		})
		return
	}

	log.Printf("✅ User %d role changed to %s by admin %d", user.ID, role, adminID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role updated",
		"data":    user,
	})
}

// UpdateUserStatus activates or deactivates a user account
func UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid user ID",
			"message": "User ID must be a number",
		})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "User not found",
		})
		return
	}

	adminID := c.GetUint("user_id")
	if user.ID == adminID && !*req.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cannot deactivate yourself",
			"message": "Admins cannot deactivate their own account",
		})
		return
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update status",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated",
		"data":    user,
	})
}

// GetAllPickupRequests returns every pickup request for the admin table
func GetAllPickupRequests(c *gin.Context) {
	query := database.DB.Preload("User").Preload("AssignedCollector")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.PickupRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch pickup requests",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
		"count":   len(requests),
	})
}

// GetAllFeedback returns every feedback entry, newest first
func GetAllFeedback(c *gin.Context) {
	query := database.DB.Preload("User")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var feedback []models.Feedback
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch feedback",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedback,
		"count":   len(feedback),
	})
}

// ModerateFeedback updates a feedback entry's moderation status. Marking an
// entry resolved requires a non-empty admin response; the check runs before
// any write.
func ModerateFeedback(c *gin.Context) {
	feedbackID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid feedback ID",
			"message": "Feedback ID must be a number",
		})
		return
	}

	var req models.FeedbackModerate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": "status must be reviewed or resolved",
		})
		return
	}

	response := strings.TrimSpace(req.AdminResponse)
	if req.Status == string(models.FeedbackStatusResolved) && response == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Response required",
			"message": "Resolving feedback requires an admin response",
		})
		return
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, feedbackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Feedback not found",
			"message": "Feedback not found",
		})
		return
	}

	feedback.Status = models.FeedbackStatus(req.Status)
	if response != "" {
		sanitized := middleware.SanitizeInput(response)
		feedback.AdminResponse = &sanitized
	}

	if err := database.DB.Save(&feedback).Error; err != nil {
		log.Printf("❌ Feedback moderation failed for %d: %v", feedback.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update feedback",
			"message": err.Error(),
		})
		return
	}

	log.Printf("✅ Feedback %d marked %s", feedback.ID, feedback.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback updated",
		"data":    feedback,
	})
}

// GetContactMessages returns contact form submissions, newest first
func GetContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := database.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch contact messages",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
		"count":   len(messages),
	})
}
