package main

import (
	"fmt"
	"os"

	"safiwash-backend/config"
	"safiwash-backend/models"
	"safiwash-backend/routes"
	"safiwash-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}
	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Visit{},
		&models.RetentionLog{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	config.SeedDefaults()
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	retention := services.NewRetentionService(config.DB)
	retention.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
