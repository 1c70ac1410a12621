package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/models"
	"recircuit-server/services"
)

// RegisterDashboardRoutes registers the household user's dashboard routes
func RegisterDashboardRoutes(router *gin.RouterGroup) {
	router.GET("/summary", GetDashboardSummary)
}

// GetDashboardSummary returns the signed-in user's dashboard: their request
// rows reduced into status buckets, a device-type breakdown, and recent
// activity. The reduction happens here, after the fetch, in one pass.
func GetDashboardSummary(c *gin.Context) {
	userID := c.GetUint("user_id")

	var requests []models.PickupRequest
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch dashboard data",
			"message": err.Error(),
		})
		return
	}

	summary := services.SummarizeRequestStatuses(requests)
	deviceChart := services.SummarizeDeviceTypes(requests)

	recent := requests
	if len(recent) > 5 {
		recent = recent[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"summary":         summary,
			"device_types":    deviceChart,
			"recent_activity": recent,
		},
	})
}
