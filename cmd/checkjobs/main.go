package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/database"
	"github.com/sahilchouksey/task-manager-api/model"
	"gorm.io/gorm"
)

func main() {
	jobName := flag.String("job", "", "only show runs of this job")
	limit := flag.Int("limit", 20, "number of runs to show")
	flag.Parse()

	if err := run(*jobName, *limit); err != nil {
		log.Fatal(err)
	}
}

func run(jobName string, limit int) error {
	// Load .env
	if err := config.LoadENV(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	env, err := config.Get()
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	store, err := database.Open(env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("job logs are only written by GORM stores, DB_DRIVER=%s", env.DB_DRIVER)
	}

	runs, err := recentRuns(db, jobName, limit)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%-6s %-22s %-10s %-20s %-10s %s\n", "ID", "JOB", "STATUS", "STARTED", "DURATION", "MESSAGE")
	fmt.Println(strings.Repeat("=", 100))

	for _, entry := range runs {
		message := entry.Message
		if entry.Status == model.CronJobFailed {
			message = entry.ErrorMsg
		}
		fmt.Printf("%-6d %-22s %-10s %-20s %-10s %s\n",
			entry.ID,
			entry.JobName,
			entry.Status,
			entry.StartedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%dms", entry.Duration),
			message,
		)
	}

	if len(runs) == 0 {
		fmt.Println("No cron job runs recorded")
	}
	return nil
}

// recentRuns returns the newest job runs first, optionally for one job only
func recentRuns(db *gorm.DB, jobName string, limit int) ([]model.CronJobLog, error) {
	query := db.Model(&model.CronJobLog{}).Order("started_at DESC").Limit(limit)
	if jobName != "" {
		query = query.Where("job_name = ?", jobName)
	}

	var runs []model.CronJobLog
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to query cron job logs: %w", err)
	}
	return runs, nil
}
