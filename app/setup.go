package app

import (
	"fmt"
	"os"

	"github.com/careerhq/careerhq-api/api"
	"github.com/careerhq/careerhq-api/config"
	"github.com/careerhq/careerhq-api/database"
	"github.com/careerhq/careerhq-api/router"
	"github.com/careerhq/careerhq-api/services/cron"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Scheduled maintenance jobs, enabled unless CRON_ENABLED=false
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			cronManager = cron.NewCronManager(db)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
			}
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware is attached inside)
	router.SetupRoutes(app, store)

	return server.Run()
}
