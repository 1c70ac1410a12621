package main

import (
	"log"
	"os"

	"recircuit-server/database"
	"recircuit-server/models"
	"recircuit-server/services"
)

// seedAdminUser creates the default admin account on first boot. Runs once;
// a no-op when any admin already exists.
func seedAdminUser() error {
	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@recircuit.eco"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("⚠️ ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	jwtService := services.NewJWTService()
	hashedPassword, err := jwtService.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName:     "ReCircuit Admin",
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin account: %s", email)
	return nil
}
