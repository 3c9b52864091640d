package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/sahilchouksey/task-manager-api/utils/validation"
	"gopkg.in/yaml.v3"
)

// SeedTask is one entry of a seed file
type SeedTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	DueDate     string `yaml:"due_date"`
}

// SeedFile is the YAML document read by cmd/seed
type SeedFile struct {
	Tasks []SeedTask `yaml:"tasks"`
}

// LoadSeedFile reads and validates a YAML seed file
func LoadSeedFile(path string) ([]model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML into tasks, rejecting entries that would fail
// request validation
func ParseSeed(data []byte) ([]model.Task, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	v := validation.NewValidator()
	tasks := make([]model.Task, 0, len(file.Tasks))
	for i, entry := range file.Tasks {
		task := model.Task{
			Title:  entry.Title,
			Status: model.TaskStatus(entry.Status),
		}
		if entry.Description != "" {
			desc := entry.Description
			task.Description = &desc
		}
		if entry.DueDate != "" {
			due, err := model.ParseDate(entry.DueDate)
			if err != nil {
				return nil, fmt.Errorf("seed task %d: %w", i, err)
			}
			task.DueDate = &due
		}

		if err := v.ValidateStruct(task); err != nil {
			return nil, fmt.Errorf("seed task %d: %v", i, validation.FormatValidationErrors(err))
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Seeder handles database seeding operations
type Seeder struct {
	store TaskStore
}

// NewSeeder creates a new seeder instance
func NewSeeder(store TaskStore) *Seeder {
	return &Seeder{store: store}
}

// SeedTasks inserts tasks in one transaction and returns how many were
// written. Unless force is set, nothing happens when tasks already exist.
func (s *Seeder) SeedTasks(ctx context.Context, tasks []model.Task, force bool) (int, error) {
	inserted := 0

	err := s.store.Transaction(ctx, func(repo TaskRepository) error {
		if !force {
			existing, err := repo.FindAll(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				log.Printf("Tasks table already has %d rows, skipping seed", len(existing))
				return nil
			}
		}

		for i := range tasks {
			task := tasks[i]
			task.ID = 0
			if err := repo.Save(ctx, &task); err != nil {
				return fmt.Errorf("failed to seed task %q: %w", task.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
