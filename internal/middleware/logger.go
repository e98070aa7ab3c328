package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/woningspotters/woningspotters-api/internal/session"
)

// AccessLog writes one structured record per request. Server errors are
// logged at ERROR so the Postgres handler persists them.
func AccessLog(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := statusOf(c, err)
		attrs := []any{
			"method", c.Method(),
			"route", routeOf(c),
			"status", status,
			"latency_ms", float64(time.Since(start).Microseconds()) / 1000,
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"ip", c.IP(),
		}
		if id := session.OptionalUserID(c); id != nil {
			attrs = append(attrs, "user_id", id.String())
		}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Info("request", attrs...)
		}
		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// routeOf returns the matched route pattern so metric labels stay bounded.
func routeOf(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return "unmatched"
}
