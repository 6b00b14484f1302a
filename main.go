package main

import (
	"fmt"
	"log"
	"os"

	"queueflow-backend/config"
	"queueflow-backend/controllers"
	"queueflow-backend/models"
	"queueflow-backend/queue"
	"queueflow-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Branch{},
		&models.Service{},
		&models.Counter{},
		&models.Staff{},
		&models.Token{},
		&models.TokenSequence{},
	)

	seedAdmin()
}

func main() {
	recalculator := controllers.Setup(config.DB)
	scheduler := queue.StartScheduler(recalculator)
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

// seedAdmin creates the first admin account (and its branch) when the
// staff table is empty, from ADMIN_EMAIL/ADMIN_PASSWORD.
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	config.DB.Model(&models.Staff{}).Count(&count)
	if count > 0 {
		return
	}

	branch := models.Branch{Name: "Main Branch", IsActive: true}
	if err := config.DB.Create(&branch).Error; err != nil {
		log.Printf("Failed to seed default branch: %v", err)
		return
	}

	admin := models.Staff{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
		BranchID: branch.ID,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", email)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
