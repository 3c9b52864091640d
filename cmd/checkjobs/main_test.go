package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sahilchouksey/task-manager-api/database"
	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestRecentRuns(t *testing.T) {
	store, err := database.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Init())
	defer store.Close()

	db := store.GetDB().(*gorm.DB)
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"count_overdue_tasks", "other_job", "count_overdue_tasks"} {
		require.NoError(t, db.Create(&model.CronJobLog{
			JobName:   name,
			Status:    model.CronJobCompleted,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Metadata:  datatypes.JSON("{}"),
		}).Error)
	}

	runs, err := recentRuns(db, "", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))

	runs, err = recentRuns(db, "count_overdue_tasks", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	for _, entry := range runs {
		assert.Equal(t, "count_overdue_tasks", entry.JobName)
	}
}

func TestRun_SQLite(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "jobs.db"))

	// Fresh database without the job log table
	err := run("", 5)
	assert.ErrorContains(t, err, "failed to query cron job logs")
}
