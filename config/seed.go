// config/seed.go
package config

import (
	"os"

	"safiwash-backend/models"

	log "github.com/sirupsen/logrus"
)

// SeedDefaults creates the admin account and the default wash catalog on
// first boot. Reruns are no-ops.
func SeedDefaults() {
	seedAdminUser()
	seedServiceCatalog()
}

func seedAdminUser() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Warn("ADMIN_PASSWORD not set, seeding admin with default password")
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Errorf("Failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := models.User{
		Username: username,
		Password: password, // hashed in BeforeCreate hook
		FullName: "System Manager",
		Role:     "admin",
		IsActive: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Errorf("Failed to seed admin user: %v", err)
		return
	}
	log.Infof("Seeded admin user %q", username)
}

func seedServiceCatalog() {
	var count int64
	if err := DB.Model(&models.Service{}).Count(&count).Error; err != nil {
		log.Errorf("Failed to check service catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	defaults := []models.Service{
		{Name: "Basic Exterior Wash", Description: "Quick exterior rinse and dry", Price: 200.00, Duration: 15, IsActive: true},
		{Name: "Standard Wash", Description: "Exterior wash with interior vacuum", Price: 350.00, Duration: 30, IsActive: true},
		{Name: "Full Service Wash", Description: "Complete exterior and interior cleaning", Price: 500.00, Duration: 45, IsActive: true},
		{Name: "Premium Detail", Description: "Full wash plus wax and tire shine", Price: 800.00, Duration: 60, IsActive: true},
		{Name: "Interior Deep Clean", Description: "Seats, dashboard, and carpet cleaning", Price: 600.00, Duration: 50, IsActive: true},
		{Name: "Engine Bay Cleaning", Description: "Engine compartment wash and degrease", Price: 400.00, Duration: 25, IsActive: true},
	}
	if err := DB.Create(&defaults).Error; err != nil {
		log.Errorf("Failed to seed service catalog: %v", err)
		return
	}
	log.Infof("Seeded %d default services", len(defaults))
}
