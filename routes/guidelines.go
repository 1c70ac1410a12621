package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterGuidelinesRoutes registers the public recycling guidelines routes
func RegisterGuidelinesRoutes(router *gin.RouterGroup) {
	router.GET("", GetGuidelines)
}

// GetGuidelines returns the static recycling guidelines content
func GetGuidelines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"categories": guidelineCategories,
			"tips":       preparationTips,
		},
	})
}

// guidelineCategories lists what we accept per device category
var guidelineCategories = []gin.H{
	{
		"title": "Mobile Devices",
		"items": []string{"Smartphones", "Tablets", "Smartwatches", "E-readers"},
		"note":  "Remove SIM cards and perform a factory reset before handover.",
	},
	{
		"title": "Computers & Laptops",
		"items": []string{"Desktop computers", "Laptops", "Monitors", "Keyboards & mice"},
		"note":  "Wipe or remove hard drives containing personal data.",
	},
	{
		"title": "Batteries",
		"items": []string{"Lithium-ion batteries", "Rechargeable batteries", "Power banks"},
		"note":  "Tape battery terminals to prevent short circuits.",
	},
	{
		"title": "Audio & Video",
		"items": []string{"Televisions", "Speakers", "Headphones", "Cameras"},
		"note":  "Include remote controls and original cables when possible.",
	},
	{
		"title": "Office Equipment",
		"items": []string{"Printers", "Scanners", "Fax machines", "Shredders"},
		"note":  "Remove ink and toner cartridges; they are recycled separately.",
	},
	{
		"title": "Photography",
		"items": []string{"Digital cameras", "Camcorders", "Flash units", "Chargers"},
		"note":  "Remove memory cards before drop-off or pickup.",
	},
}

// preparationTips lists the how-to-prepare advice shown above the form
var preparationTips = []gin.H{
	{
		"title":       "Data Security",
		"description": "Back up and wipe all personal data before recycling any device. A factory reset is the minimum; for drives, use a secure erase tool.",
	},
	{
		"title":       "Battery Safety",
		"description": "Swollen or damaged batteries need special handling. Flag them in the special instructions so the collector brings a fireproof container.",
	},
	{
		"title":       "Original Packaging",
		"description": "If you still have the original box, use it. It protects the device in transit and its materials are recycled too.",
	},
}
