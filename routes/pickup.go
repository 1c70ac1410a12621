package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"recircuit-server/database"
	"recircuit-server/middleware"
	"recircuit-server/models"
)

// RegisterPickupContentRoutes registers the public enumerations and static
// content the scheduling form consumes
func RegisterPickupContentRoutes(router *gin.RouterGroup) {
	router.GET("/device-types", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    models.DeviceTypes,
		})
	})

	router.GET("/time-slots", func(c *gin.Context) {
		slots := make([]gin.H, 0, len(models.AllTimeSlots))
		for _, slot := range models.AllTimeSlots {
			slots = append(slots, gin.H{"value": slot, "label": timeSlotLabels[slot]})
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    slots,
		})
	})

	router.GET("/dropoff-centers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    dropoffCenters,
		})
	})
}

// RegisterPickupRoutes registers the authenticated scheduling routes
func RegisterPickupRoutes(router *gin.RouterGroup) {
	router.POST("", CreatePickupRequest)
	router.GET("/mine", GetMyPickupRequests)
}

// CreatePickupRequest schedules a new e-waste pickup. All field validation
// runs before any store call; a validation failure never reaches the
// database.
func CreatePickupRequest(c *gin.Context) {
	var req models.PickupRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if missing := missingPickupFields(&req); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"message": "Please fill in all required fields",
			"fields":  missing,
		})
		return
	}

	if !models.IsValidTimeSlot(req.PickupTime) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid time slot",
			"message": "pickup_time must be one of the offered windows",
		})
		return
	}

	for _, deviceType := range req.DeviceTypes {
		if !models.IsValidDeviceType(deviceType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid device type",
				"message": "device_types contains an unrecognized category: " + deviceType,
			})
			return
		}
	}

	if _, err := time.Parse("2006-01-02", req.PickupDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid pickup date",
			"message": "pickup_date must be in YYYY-MM-DD format",
		})
		return
	}

	userID := c.GetUint("user_id")

	pickup := models.PickupRequest{
		UserID:              userID,
		FullName:            middleware.SanitizeInput(req.FullName),
		Phone:               strings.TrimSpace(req.Phone),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Address:             middleware.SanitizeInput(req.Address),
		PickupDate:          req.PickupDate,
		PickupTime:          models.TimeSlot(req.PickupTime),
		DeviceTypes:         pq.StringArray(req.DeviceTypes),
		EstimatedWeight:     req.EstimatedWeight,
		SpecialInstructions: middleware.SanitizeInput(req.SpecialInstructions),
		Status:              models.PickupStatusPending,
	}

	if err := database.DB.Create(&pickup).Error; err != nil {
		log.Printf("❌ Pickup request creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to schedule pickup",
			"message": err.Error(),
		})
		return
	}

	log.Printf("✅ Pickup request %d scheduled by user %d", pickup.ID, userID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Pickup scheduled! We'll send you a confirmation email shortly.",
		"data":    pickup,
	})
}

// GetMyPickupRequests returns the signed-in user's pickup requests
func GetMyPickupRequests(c *gin.Context) {
	userID := c.GetUint("user_id")

	var requests []models.PickupRequest
	if err := database.DB.
		Where("user_id = ?", userID).
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
	})
}

// missingPickupFields runs the presence check over the required subset
func missingPickupFields(req *models.PickupRequestCreate) []string {
	var missing []string
	if strings.TrimSpace(req.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(req.PickupDate) == "" {
		missing = append(missing, "pickup_date")
	}
	if strings.TrimSpace(req.PickupTime) == "" {
		missing = append(missing, "pickup_time")
	}
	if len(req.DeviceTypes) == 0 {
		missing = append(missing, "device_types")
	}
	return missing
}

// timeSlotLabels maps each pickup window to its display label
var timeSlotLabels = map[models.TimeSlot]string{
	models.SlotMorning:   "9:00 AM - 12:00 PM",
	models.SlotAfternoon: "12:00 PM - 3:00 PM",
	models.SlotEvening:   "3:00 PM - 6:00 PM",
}

// dropoffCenters is the static nearby drop-off list shown on the pickup page
var dropoffCenters = []gin.H{
	{"name": "Green Tech Center", "address": "123 Eco Street", "distance": "2.3 miles", "hours": "Mon-Sat 9AM-6PM"},
	{"name": "Sustainable Solutions", "address": "456 Recycle Ave", "distance": "3.1 miles", "hours": "Daily 8AM-8PM"},
	{"name": "EcoPoint Recycling", "address": "789 Planet Blvd", "distance": "4.5 miles", "hours": "Mon-Fri 10AM-7PM"},
}
