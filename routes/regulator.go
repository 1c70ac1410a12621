package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"recircuit-server/database"
	"recircuit-server/models"
	"recircuit-server/services"
)

const complianceCacheKey = "regulator:compliance"

// RegisterRegulatorRoutes registers the regulator oversight routes
func RegisterRegulatorRoutes(router *gin.RouterGroup) {
	router.GET("/compliance", GetComplianceReport)
	router.GET("/requests", GetAllRequestsForOversight)
}

// GetComplianceReport returns the system-wide compliance report: every
// pickup request and every profile reduced into buckets. The two fetches
// are independent, so the report tolerates read skew; it is cached briefly
// since regulator dashboards poll.
func GetComplianceReport(c *gin.Context) {
	var cached services.ComplianceReport
	if hit, err := services.Cache.Get(complianceCacheKey, &cached); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    cached,
			"cached":  true,
		})
		return
	}

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
			"error":   "Failed to fetch profiles",
			"message": err.Error(),
		})
		return
	}

	report := services.BuildComplianceReport(requests, users)

	if err := services.Cache.Set(complianceCacheKey, report); err != nil {
		log.Printf("⚠️ Failed to cache compliance report: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// GetAllRequestsForOversight returns every pickup request, newest first,
// for the regulator's audit table
func GetAllRequestsForOversight(c *gin.Context) {
	var requests []models.PickupRequest
	if err := database.DB.
		Preload("User").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
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
