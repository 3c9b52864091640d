package services

import "errors"

// ErrTaskNotFound matches every TaskNotFoundError via errors.Is
var ErrTaskNotFound = errors.New("Task not found")

// TaskNotFoundError reports a lookup for an id with no stored task. The
// message is the one shown to API clients, so it does not include the id.
type TaskNotFoundError struct {
	ID uint
}

func (e *TaskNotFoundError) Error() string {
	return "Task not found"
}

func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}
