package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/task-manager-api/database"
	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/sahilchouksey/task-manager-api/utils/cache"
	"github.com/sahilchouksey/task-manager-api/utils/metrics"
	"go.uber.org/zap"
)

// Cache is satisfied by cache.RedisCache
type Cache interface {
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	SetTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id uint) error
}

// EventPublisher is satisfied by mq.Publisher
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// TaskServiceConfig holds the optional collaborators of TaskService
type TaskServiceConfig struct {
	Cache     Cache
	Publisher EventPublisher
	Logger    *zap.Logger
}

// TaskService implements the task use cases on top of a TaskStore
type TaskService struct {
	store     database.TaskStore
	cache     Cache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewTaskService creates a new task service. Cache and Publisher may be nil.
func NewTaskService(store database.TaskStore, cfg TaskServiceConfig) *TaskService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TaskService{
		store:     store,
		cache:     cfg.Cache,
		publisher: cfg.Publisher,
		logger:    logger.Named("task_service"),
	}
}

// GetAllTasks returns every task, or an empty slice when there are none
func (s *TaskService) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.Tasks().FindAll(ctx)
	s.record("list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

// GetTaskByID returns the task or a *TaskNotFoundError
func (s *TaskService) GetTaskByID(ctx context.Context, id uint) (*model.Task, error) {
	if task, ok := s.cachedTask(ctx, id); ok {
		s.record("get", nil)
		return task, nil
	}

	task, err := findTask(ctx, s.store.Tasks(), id)
	s.record("get", err)
	if err != nil {
		return nil, err
	}

	s.cacheTask(ctx, task)
	return task, nil
}

// CreateTask persists task as a new row, ignoring any client supplied id
func (s *TaskService) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	task.ID = 0

	err := s.store.Transaction(ctx, func(repo database.TaskRepository) error {
		return repo.Save(ctx, &task)
	})
	s.record("create", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.cacheTask(ctx, &task)
	s.publish(ctx, EventTaskCreated, task.ID, &task)
	return &task, nil
}

// UpdateTask overwrites title, description, status and due date of the task
// with the given id. Nil fields in details clear the stored value.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, details model.Task) (*model.Task, error) {
	var updated *model.Task

	err := s.store.Transaction(ctx, func(repo database.TaskRepository) error {
		task, err := findTask(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.evictTask(ctx, id); err != nil {
			return err
		}

		task.Title = details.Title
		task.Description = details.Description
		task.Status = details.Status
		task.DueDate = details.DueDate

		if err := repo.Save(ctx, task); err != nil {
			return fmt.Errorf("failed to update task %d: %w", id, err)
		}
		updated = task
		return nil
	})
	s.record("update", err)
	if err != nil {
		return nil, err
	}

	if !s.cacheTask(ctx, updated) {
		s.dropTask(ctx, id)
	}
	s.publish(ctx, EventTaskUpdated, updated.ID, updated)
	return updated, nil
}

// DeleteTask removes the task with the given id
func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(repo database.TaskRepository) error {
		task, err := findTask(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.evictTask(ctx, id); err != nil {
			return err
		}

		if err := repo.Delete(ctx, task); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return &TaskNotFoundError{ID: id}
			}
			return fmt.Errorf("failed to delete task %d: %w", id, err)
		}
		return nil
	})
	s.record("delete", err)
	if err != nil {
		return err
	}

	// A read between eviction and commit may have cached the old row again
	s.dropTask(ctx, id)
	s.publish(ctx, EventTaskDeleted, id, nil)
	return nil
}

func findTask(ctx context.Context, repo database.TaskRepository, id uint) (*model.Task, error) {
	task, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, &TaskNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to fetch task %d: %w", id, err)
	}
	return task, nil
}

func (s *TaskService) cachedTask(ctx context.Context, id uint) (*model.Task, bool) {
	if s.cache == nil {
		return nil, false
	}

	task, err := s.cache.GetTask(ctx, id)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("task cache read failed", zap.Uint("task_id", id), zap.Error(err))
		}
		return nil, false
	}
	return task, true
}

// cacheTask reports whether the task was written to the cache
func (s *TaskService) cacheTask(ctx context.Context, task *model.Task) bool {
	if s.cache == nil {
		return true
	}
	if err := s.cache.SetTask(ctx, task); err != nil {
		s.logger.Warn("task cache write failed", zap.Uint("task_id", task.ID), zap.Error(err))
		return false
	}
	return true
}

// dropTask is the post-commit eviction; the write is already durable so
// failures are only logged
func (s *TaskService) dropTask(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteTask(ctx, id); err != nil {
		s.logger.Error("task cache eviction failed after commit", zap.Uint("task_id", id), zap.Error(err))
	}
}

// evictTask runs inside the mutating transaction. A failure aborts the
// mutation, otherwise the stale entry would keep being served.
func (s *TaskService) evictTask(ctx context.Context, id uint) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to evict cached task %d: %w", id, err)
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, eventType string, id uint, task *model.Task) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, NewTaskEvent(eventType, id, task)); err != nil {
		s.logger.Error("failed to publish task event",
			zap.String("event", eventType), zap.Uint("task_id", id), zap.Error(err))
	}
}

func (s *TaskService) record(operation string, err error) {
	switch {
	case err == nil:
		metrics.RecordTaskOperation(operation, metrics.OutcomeSuccess)
	case errors.Is(err, ErrTaskNotFound):
		metrics.RecordTaskOperation(operation, metrics.OutcomeNotFound)
	default:
		metrics.RecordTaskOperation(operation, metrics.OutcomeError)
		s.logger.Error("task operation failed", zap.String("operation", operation), zap.Error(err))
	}
}
