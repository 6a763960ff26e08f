package serverutils

import (
	"time"

	"notes-app/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestID := ctx.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Locals(RequestIDKey, requestID)
		ctx.Set(RequestIDHeader, requestID)

		start := time.Now()
		err := ctx.Next()

		// Errors are rendered later by the app ErrorHandler; report the status it will use.
		status := ctx.Response().StatusCode()
		if err != nil {
			status = AsAppError(err).StatusCode()
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		log.Info("HTTP", "request completed", map[string]interface{}{
			"request_id":  requestID,
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		return err
	}
}
