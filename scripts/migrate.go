package main

import (
	"log"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"
	"sports-events-backend/internal/utils"
	"sports-events-backend/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}
	log.Println("Database migrations completed")

	if err := seedCatalog(db); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Println("Catalog reference data seeded")

	if err := createDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}
	log.Println("Migration process completed")
}

// seedCatalog inserts the sport and event type reference rows every
// deployment starts with. Existing rows are left untouched.
func seedCatalog(db *gorm.DB) error {
	sportTypes := []models.SportType{
		{Name: "Football", Description: "Team sport played with a ball"},
		{Name: "Basketball", Description: "Team game with a ball and baskets"},
		{Name: "Volleyball", Description: "Team game with a ball over a net"},
		{Name: "Tennis", Description: "Racket sport played with a ball"},
		{Name: "Chess", Description: "Board game of strategy"},
		{Name: "Running", Description: "Track and field discipline"},
		{Name: "Yoga", Description: "Physical and mental practice"},
		{Name: "Swimming", Description: "Water sport"},
		{Name: "Boxing", Description: "Combat contact sport"},
		{Name: "Cycling", Description: "Bicycle racing disciplines"},
		{Name: "Esports", Description: "Competitive video gaming"},
	}
	for i := range sportTypes {
		var existing models.SportType
		if err := db.Where("name = ?", sportTypes[i].Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&sportTypes[i]).Error; err != nil {
			return err
		}
	}

	eventTypes := []models.EventType{
		{Name: "Tournament", Description: "Knockout or round-robin competition"},
		{Name: "Friendly match", Description: "Meeting of teams without prizes or titles"},
		{Name: "Training session", Description: "Group practice to improve skills"},
		{Name: "Masterclass", Description: "Demonstration and coaching by an expert"},
		{Name: "Championship", Description: "Official high-level competition"},
		{Name: "Festival", Description: "Large public sporting gathering"},
		{Name: "Race", Description: "Organized running competition"},
		{Name: "Marathon", Description: "Race over the 42.195 km distance"},
		{Name: "Online tournament", Description: "Competition held over the internet"},
		{Name: "Pickup game", Description: "Informal gathering to play together"},
	}
	for i := range eventTypes {
		var existing models.EventType
		if err := db.Where("name = ?", eventTypes[i].Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&eventTypes[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	adminEmail := "admin@example.com"
	adminPassword := "adminpass123"

	// Check if admin already exists
	var existingAdmin models.User
	if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Println("Default admin user already exists")
		return nil
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:       adminEmail,
		Password:    hashedPassword,
		DisplayName: "Administrator",
		IsActive:    true,
		IsStaff:     true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin user created: %s", adminEmail)
	return nil
}
