package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sahilchouksey/task-manager-api/utils/metrics"
)

// Metrics records the duration of every request, labelled by the matched
// route template so /api/tasks/1 and /api/tasks/2 share a series.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := "unmatched"
		if route := c.Route(); route != nil && route.Path != "/" {
			path = route.Path
		}

		// Label values outlive the request, so they must not alias Fiber's buffers
		method := utils.CopyString(c.Method())
		metrics.RecordHTTPRequestDuration(method, utils.CopyString(path), strconv.Itoa(status), time.Since(start))
		return err
	}
}
