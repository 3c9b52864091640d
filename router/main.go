package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/database"
	"github.com/sahilchouksey/task-manager-api/handlers"
	task_handlers "github.com/sahilchouksey/task-manager-api/handlers/task"
	"github.com/sahilchouksey/task-manager-api/services"
	"github.com/sahilchouksey/task-manager-api/utils"
	"github.com/sahilchouksey/task-manager-api/utils/middleware"
	"go.uber.org/zap"
)

// Dependencies are the collaborators routes are built from
type Dependencies struct {
	Env         *config.EnvironmentVariable
	Store       database.Storage
	TaskService *services.TaskService
	Logger      *zap.Logger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	// Setup security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    deps.Env.ALLOWED_ORIGINS,
		RateLimitRequests: deps.Env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   deps.Env.RATE_LIMIT_WINDOW,
		DisableAccessLog:  deps.Env.GO_ENV == "test",
	})
	app.Use(middleware.Metrics())

	// Operational endpoints
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Task routes
	taskHandler := task_handlers.NewTaskHandler(deps.TaskService, deps.Logger)
	taskHandler.RegisterRoutes(api)
}
