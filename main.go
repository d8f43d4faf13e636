package main

import (
	"fmt"
	"os"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/routes"
	"cleanfoss-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}
	log.SetFormatter(&log.JSONFormatter{})

	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Session{},
		&models.OAuthAccount{},
		&models.Service{},
		&models.ServiceExtra{},
		&models.Vehicle{},
		&models.Location{},
		&models.Booking{},
		&models.BookingService{},
		&models.Payment{},
		&models.NotificationLog{},
	)

	seedDefaultCompany()
}

// seedDefaultCompany makes sure the fallback tenant for anonymous bookings
// exists.
func seedDefaultCompany() {
	company := models.Company{
		ID:       config.App().DefaultCompanyID,
		Name:     "CleanFoss",
		IsActive: true,
	}
	if err := config.DB.FirstOrCreate(&company, "id = ?", company.ID).Error; err != nil {
		log.Fatalf("Failed to seed default company: %v", err)
	}
}

func main() {
	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
