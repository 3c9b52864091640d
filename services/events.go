package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/task-manager-api/model"
)

// Routing keys for task lifecycle events
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// TaskEvent is the message body published after a committed mutation.
// Task is omitted for deletions.
type TaskEvent struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	TaskID     uint        `json:"task_id"`
	Task       *model.Task `json:"task,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewTaskEvent(eventType string, taskID uint, task *model.Task) TaskEvent {
	return TaskEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		TaskID:     taskID,
		Task:       task,
		OccurredAt: time.Now().UTC(),
	}
}
