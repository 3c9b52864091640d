package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/task-manager-api/api"
	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/database"
	"github.com/sahilchouksey/task-manager-api/router"
	"github.com/sahilchouksey/task-manager-api/services"
	"github.com/sahilchouksey/task-manager-api/services/cron"
	"github.com/sahilchouksey/task-manager-api/utils"
	"github.com/sahilchouksey/task-manager-api/utils/cache"
	"github.com/sahilchouksey/task-manager-api/utils/mq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(getEnv.GO_ENV, getEnv.LOG_LEVEL)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	// Initialize database connection
	store, err := database.Open(getEnv)
	if err != nil {
		logger.Error("Failed to connect to the database. Check whether it is running.",
			zap.String("driver", getEnv.DB_DRIVER), zap.Error(err))
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Error("Failed to initialize database tables", zap.Error(err))
		return err
	}

	serviceConfig := services.TaskServiceConfig{
		Logger: logger,
	}

	// Optional Redis task cache
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL, getEnv.TASK_CACHE_TTL)
		if err != nil {
			logger.Warn("Failed to connect to Redis, task cache disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			serviceConfig.Cache = redisCache
		}
	}

	// Optional RabbitMQ event publisher
	if getEnv.AMQP_URL != "" {
		publisher, err := mq.NewPublisher(getEnv.AMQP_URL, getEnv.AMQP_EXCHANGE)
		if err != nil {
			logger.Warn("Failed to connect to RabbitMQ, task events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			serviceConfig.Publisher = publisher
		}
	}

	// Initialize Cron Manager (only if enabled and the store is GORM backed)
	if getEnv.CRON_ENABLED {
		if db, ok := store.GetDB().(*gorm.DB); ok {
			cronManager := cron.NewCronManager(db, logger, getEnv.OVERDUE_SWEEP_SCHEDULE)
			if err := cronManager.Start(); err != nil {
				// Don't fail the app, just log the warning
				logger.Warn("Failed to start cron jobs", zap.Error(err))
			} else {
				defer cronManager.Stop()
			}
		} else {
			logger.Info("Cron jobs need a GORM store, overdue sweep disabled", zap.String("driver", getEnv.DB_DRIVER))
		}
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), logger)

	// Setup Routes
	router.SetupRoutes(server.GetEngine(), router.Dependencies{
		Env:         getEnv,
		Store:       store,
		TaskService: services.NewTaskService(store, serviceConfig),
		Logger:      logger,
	})

	return run(server, logger)
}

// run serves until the listener fails or the process receives SIGINT/SIGTERM
func run(server *api.APIServer, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}
