// migrate_gorm.go - Run this file to apply migrations for the configured DB_DRIVER
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"log"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/database"
)

func main() {
	log.Println("=== Migration ===")

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read configuration:", err)
	}

	store, err := database.Open(env)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Health check
	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Printf("Migrations applied with driver %q", env.DB_DRIVER)
	log.Println("Tables: tasks, cron_job_logs (GORM drivers only)")
}
