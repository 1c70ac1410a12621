package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recircuit-server/config"
	"recircuit-server/database"
	"recircuit-server/jobs"
	"recircuit-server/middleware"
	"recircuit-server/models"
	"recircuit-server/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Redis is optional; dashboards just skip the cache without it
	if config.AppConfig.Redis.URL != "" {
		if err := database.ConnectRedis(config.AppConfig.Redis.URL); err != nil {
			log.Printf("⚠️ Redis unavailable, stats caching disabled: %v", err)
		}
		defer database.DisconnectRedis()
	}

	// Seed the default admin account if none exists
	if err := seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeding failed: %v", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "User-Agent", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "ReCircuit server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Public content
		routes.RegisterPickupContentRoutes(api.Group("/pickup-content"))
		routes.RegisterGuidelinesRoutes(api.Group("/guidelines"))
		routes.RegisterContactRoutes(api.Group("/contact"))

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterPickupRoutes(protected.Group("/pickup-requests"))
			routes.RegisterFeedbackRoutes(protected.Group("/feedback"))
			routes.RegisterDashboardRoutes(protected.Group("/dashboard"))

			// Role-gated workspaces. The guard resolves from the profile row,
			// so a stale role tag on the client never widens access.
			collectorRoutes := protected.Group("/collector")
			collectorRoutes.Use(middleware.RequireRole(models.RoleCollector))
			routes.RegisterCollectorRoutes(collectorRoutes)

			regulatorRoutes := protected.Group("/regulator")
			regulatorRoutes.Use(middleware.RequireRole(models.RoleRegulator))
			routes.RegisterRegulatorRoutes(regulatorRoutes)

			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
			routes.RegisterAdminRoutes(adminRoutes)
		}
	}

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// allowedOrigins lists the web client origins permitted by CORS
func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
}
