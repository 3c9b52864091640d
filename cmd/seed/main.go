package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/database"
)

func main() {
	file := flag.String("file", "seed/tasks.yaml", "YAML file with the tasks to insert")
	force := flag.Bool("force", false, "insert even when the tasks table is not empty")
	flag.Parse()

	if err := run(*file, *force); err != nil {
		log.Fatal(err)
	}
}

func run(file string, force bool) error {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	env, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	// Parse before connecting so a bad file never touches the database
	tasks, err := database.LoadSeedFile(file)
	if err != nil {
		return err
	}

	store, err := database.Open(env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Task Manager - Database Seeding")
	fmt.Println(separator)

	inserted, err := database.NewSeeder(store).SeedTasks(context.Background(), tasks, force)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Printf("Inserted %d of %d tasks from %s\n", inserted, len(tasks), file)
	fmt.Println(separator)
	return nil
}
