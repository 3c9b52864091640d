package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-manager-api/utils/response"
	"go.uber.org/zap"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	logger        *zap.Logger
}

func NewAPIServer(listenAddress string, logger *zap.Logger) *APIServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:      "task-manager-api",
			ErrorHandler: ErrorHandler(logger),
		}),
		listenAddress: listenAddress,
		logger:        logger,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.logger.Info("Starting API Server", zap.String("address", s.listenAddress))

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API Server")
	return s.app.ShutdownWithContext(ctx)
}

// ErrorHandler answers errors returned by handlers. *fiber.Error keeps its
// code and message; anything else is logged and hidden behind a 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Error(c, fe.Code, fe.Message)
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
			zap.Error(err),
		)
		return response.InternalServerError(c, "")
	}
}
