package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/models"
	"recircuit-server/services"
)

// RegisterCollectorRoutes registers the collector workspace routes
func RegisterCollectorRoutes(router *gin.RouterGroup) {
	router.GET("/requests", GetPendingRequests)
	router.GET("/requests/mine", GetAssignedRequests)
	router.PATCH("/requests/:id/accept", AcceptPickupRequest)
	router.PATCH("/requests/:id/complete", CompletePickupRequest)
	router.GET("/summary", GetCollectorSummary)
}

// GetPendingRequests returns the open pickup queue, oldest first
func GetPendingRequests(c *gin.Context) {
	var requests []models.PickupRequest
	if err := database.DB.
		Where("status = ?", models.PickupStatusPending).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch pending requests",
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

// GetAssignedRequests returns the requests assigned to the signed-in collector
func GetAssignedRequests(c *gin.Context) {
	collectorID := c.GetUint("user_id")

	var requests []models.PickupRequest
	if err := database.DB.
		Where("assigned_collector_id = ?", collectorID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch assigned requests",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// AcceptPickupRequest moves a pending request to accepted and assigns it to
// the signed-in collector. The status guard sits in the WHERE clause so a
// concurrent accept loses cleanly instead of double-assigning.
func AcceptPickupRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID",
			"message": "Request ID must be a number",
		})
		return
	}

	collectorID := c.GetUint("user_id")
	now := time.Now()

	result := database.DB.Model(&models.PickupRequest{}).
		Where("id = ? AND status = ?", requestID, models.PickupStatusPending).
		Updates(map[string]interface{}{
			"status":                models.PickupStatusAccepted,
			"assigned_collector_id": collectorID,
			"accepted_at":           &now,
		})
	if result.Error != nil {
		log.Printf("❌ Accept failed for request %d: %v", requestID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to accept request",
			"message": result.Error.Error(),
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid status transition",
			"message": "Request is not pending; it may have been accepted already",
		})
		return
	}

	log.Printf("✅ Request %d accepted by collector %d", requestID, collectorID)

	var request models.PickupRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		log.Printf("⚠️ Reload after accept failed for request %d: %v", requestID, err)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Pickup accepted",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pickup accepted",
		"data":    request,
	})
}

// CompletePickupRequest moves an accepted request to completed. Only the
// assigned collector may complete it, and only from accepted.
func CompletePickupRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request ID",
			"message": "Request ID must be a number",
		})
		return
	}

	collectorID := c.GetUint("user_id")
	now := time.Now()

	result := database.DB.Model(&models.PickupRequest{}).
		Where("id = ? AND status = ? AND assigned_collector_id = ?",
			requestID, models.PickupStatusAccepted, collectorID).
		Updates(map[string]interface{}{
			"status":       models.PickupStatusCompleted,
			"completed_at": &now,
		})
	if result.Error != nil {
		log.Printf("❌ Complete failed for request %d: %v", requestID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to complete request",
			"message": result.Error.Error(),
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid status transition",
			"message": "Request must be accepted and assigned to you before completion",
		})
		return
	}

	log.Printf("✅ Request %d completed by collector %d", requestID, collectorID)

	var request models.PickupRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		log.Printf("⚠️ Reload after completion failed for request %d: %v", requestID, err)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Pickup completed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pickup completed",
		"data":    request,
	})
}

// GetCollectorSummary returns the collector's workload reduced into status
// buckets: their assignments plus the open queue size
func GetCollectorSummary(c *gin.Context) {
	collectorID := c.GetUint("user_id")

	var assigned []models.PickupRequest
	if err := database.DB.
		Where("assigned_collector_id = ?", collectorID).
		Find(&assigned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch collector summary",
			"message": err.Error(),
		})
		return
	}

	var pendingCount int64
	if err := database.DB.Model(&models.PickupRequest{}).
		Where("status = ?", models.PickupStatusPending).
		Count(&pendingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch collector summary",
			"message": err.Error(),
		})
		return
	}

	summary := services.SummarizeRequestStatuses(assigned)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"assignments":  summary,
			"open_queue":   pendingCount,
			"device_types": services.SummarizeDeviceTypes(assigned),
		},
	})
}
