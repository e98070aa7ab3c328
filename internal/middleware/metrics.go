package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/metrics"
)

func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.RequestStarted()
		defer metrics.RequestFinished()

		err := c.Next()
		metrics.RecordHTTPRequest(c.Method(), routeOf(c), strconv.Itoa(statusOf(c, err)), time.Since(start))
		return err
	}
}
