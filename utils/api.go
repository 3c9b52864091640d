package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/task-manager-api/database"
)

// MakeHTTPHandleFunc binds store to a handler that needs it. Errors are left
// to the app's ErrorHandler.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return handler(c, store)
	}
}
