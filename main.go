package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"slack-pto-bot/handlers"
	"slack-pto-bot/models"
	"slack-pto-bot/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as is")
	}

	for _, name := range []string{"SLACK_BOT_TOKEN", "SLACK_SIGNING_SECRET", "PTO_CHANNEL_ID", "PTO_CAL_ID"} {
		if os.Getenv(name) == "" {
			log.Fatalf("%s is not set", name)
		}
	}

	dbPath := os.Getenv("PTO_DB_PATH")
	if dbPath == "" {
		dbPath = "pto.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.PTOLink{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	credsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credsFile == "" {
		credsFile = "google-creds.json"
	}

	cal, err := services.NewGoogleCalendarFromCredentials(context.Background(), credsFile, os.Getenv("PTO_CAL_ID"))
	if err != nil {
		log.Fatalf("failed to create calendar client: %v", err)
	}

	r := gin.Default()
	r.POST("/slack/interactivity", handlers.HandleSlackInteractivity(db, cal))
	r.POST("/slack/events", handlers.HandleSlackEvents(db, cal))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
