package cron

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/task-manager-api/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultOverdueSweepSchedule runs the overdue sweep every 15 minutes
const DefaultOverdueSweepSchedule = "0 */15 * * * *"

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	db       *gorm.DB
	logger   *zap.Logger
	schedule string
	now      func() time.Time
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, logger *zap.Logger, schedule string) *CronManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = DefaultOverdueSweepSchedule
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		db:       db,
		logger:   logger.Named("cron"),
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (m *CronManager) Start() error {
	m.logger.Info("Starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.logger.Info("Cron jobs started", zap.Int("jobs", len(m.cron.Entries())))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	m.logger.Info("Stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		m.CountOverdueTasks()
	})
	return err
}

// logJobStart records a running job and returns its log row
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	m.logger.Info("Starting job", zap.String("job", jobName))

	cronLog := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronJobRunning,
		StartedAt: m.now(),
		Metadata:  datatypes.JSON("{}"),
	}
	if err := m.db.Create(cronLog).Error; err != nil {
		m.logger.Warn("Failed to record job start", zap.String("job", jobName), zap.Error(err))
	}
	return cronLog
}

// logJobComplete marks the run as completed
func (m *CronManager) logJobComplete(cronLog *model.CronJobLog, message string, metadata map[string]interface{}) {
	m.logger.Info("Completed job", zap.String("job", cronLog.JobName), zap.String("message", message))

	updates := m.finishUpdates(cronLog, model.CronJobCompleted)
	updates["message"] = message
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			updates["metadata"] = datatypes.JSON(raw)
		}
	}
	m.updateLog(cronLog, updates)
}

// logJobError marks the run as failed
func (m *CronManager) logJobError(cronLog *model.CronJobLog, err error) {
	m.logger.Error("Error in job", zap.String("job", cronLog.JobName), zap.Error(err))

	updates := m.finishUpdates(cronLog, model.CronJobFailed)
	updates["error_msg"] = err.Error()
	m.updateLog(cronLog, updates)
}

func (m *CronManager) finishUpdates(cronLog *model.CronJobLog, status model.CronJobStatus) map[string]interface{} {
	completedAt := m.now()
	return map[string]interface{}{
		"status":       status,
		"completed_at": completedAt,
		"duration":     completedAt.Sub(cronLog.StartedAt).Milliseconds(),
	}
}

func (m *CronManager) updateLog(cronLog *model.CronJobLog, updates map[string]interface{}) {
	if cronLog.ID == 0 {
		return
	}
	if err := m.db.Model(cronLog).Updates(updates).Error; err != nil {
		m.logger.Warn("Failed to update job log", zap.String("job", cronLog.JobName), zap.Error(err))
	}
}
