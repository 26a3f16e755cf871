package main

import (
	"log"

	"github.com/careerhq/careerhq-api/config"
	"github.com/careerhq/careerhq-api/database"
)

// initdb bootstraps the schema with plain SQL for environments where the API
// server runs without AutoMigrate.
func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.Start()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	log.Println("Schema initialized successfully")
}
