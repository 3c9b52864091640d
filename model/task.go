package model

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every accepted status in declaration order
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// IsValid reports whether s is one of the declared statuses
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is the single tracked entity. ID is assigned by storage on insert
// and never changes afterwards.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title" validate:"notblank,max=100"`
	Description *string    `gorm:"type:varchar(500)" json:"description" validate:"omitempty,max=500"`
	Status      TaskStatus `gorm:"type:varchar(20);not null" json:"status" validate:"required,task_status"`
	DueDate     *Date      `gorm:"type:date" json:"dueDate"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}
