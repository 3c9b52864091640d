package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/sahilchouksey/task-manager-api/utils/metrics"
)

// JobCountOverdueTasks is the job name recorded in cron_job_logs
const JobCountOverdueTasks = "count_overdue_tasks"

// CountOverdueTasks counts tasks whose due date has passed and are not DONE,
// then publishes the count to the tasks_overdue gauge.
func (m *CronManager) CountOverdueTasks() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cronLog := m.logJobStart(JobCountOverdueTasks)

	count, err := m.countOverdue(ctx, model.DateOf(m.now()))
	if err != nil {
		m.logJobError(cronLog, fmt.Errorf("failed to count overdue tasks: %w", err))
		return
	}

	metrics.SetOverdueTasks(count)
	m.logJobComplete(cronLog,
		fmt.Sprintf("Found %d overdue tasks", count),
		map[string]interface{}{"overdue": count},
	)
}

func (m *CronManager) countOverdue(ctx context.Context, today model.Date) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", today, model.TaskStatusDone).
		Count(&count).Error
	return count, err
}
