package task

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/sahilchouksey/task-manager-api/services"
	"github.com/sahilchouksey/task-manager-api/utils/response"
	"github.com/sahilchouksey/task-manager-api/utils/validation"
	"go.uber.org/zap"
)

// TaskService is the part of services.TaskService the handler calls
type TaskService interface {
	GetAllTasks(ctx context.Context) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id uint) (*model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, details model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

// TaskHandler handles task-related requests
type TaskHandler struct {
	service   TaskService
	validator *validation.Validator
	logger    *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service TaskService, logger *zap.Logger) *TaskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskHandler{
		service:   service,
		validator: validation.NewValidator(),
		logger:    logger.Named("task_handler"),
	}
}

// RegisterRoutes mounts the task endpoints on router
func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	tasks := router.Group("/tasks")
	tasks.Get("/", h.ListTasks)
	tasks.Post("/", h.CreateTask)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.service.GetAllTasks(c.UserContext())
	if err != nil {
		return err
	}

	return response.Success(c, tasks)
}

// GetTask handles GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.service.GetTaskByID(c.UserContext(), id)
	if err != nil {
		return h.serviceError(c, err)
	}

	return response.Success(c, task)
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	req, ok, err := h.parseTask(c)
	if !ok {
		return err
	}

	task, err := h.service.CreateTask(c.UserContext(), req)
	if err != nil {
		return err
	}

	h.logger.Debug("task created", zap.Uint("task_id", task.ID))
	return response.Created(c, task)
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return response.BadRequest(c, "Invalid task ID")
	}

	req, ok, err := h.parseTask(c)
	if !ok {
		return err
	}

	task, err := h.service.UpdateTask(c.UserContext(), id, req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return response.Success(c, task)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return response.BadRequest(c, "Invalid task ID")
	}

	if err := h.service.DeleteTask(c.UserContext(), id); err != nil {
		return h.serviceError(c, err)
	}

	return response.NoContent(c)
}

// parseTask decodes and validates the request body. When ok is false the
// error response has already been written and err is what the handler returns.
func (h *TaskHandler) parseTask(c *fiber.Ctx) (task model.Task, ok bool, err error) {
	if err := c.BodyParser(&task); err != nil {
		return task, false, response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(task); err != nil {
		errs := validation.FormatValidationErrors(err)
		if len(errs) == 0 {
			return task, false, err
		}
		return task, false, response.ValidationError(c, errs)
	}

	return task, true, nil
}

func (h *TaskHandler) serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrTaskNotFound) {
		return response.NotFound(c, "Task not found")
	}
	return err
}

func taskID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
