package serverutils

import (
	"errors"

	"notes-app/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every error returned by a handler as a plain-text
// response. Internal details go to the log, never to the client.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		// Framework errors (unknown route, wrong method) keep their status.
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).SendString(fiberErr.Message)
		}

		appErr := AsAppError(err)
		status := appErr.StatusCode()

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"request_id": ctx.Locals(RequestIDKey),
		}
		if appErr.Kind == KindInternalError {
			details["error"] = err
			log.Error("ErrorHandler", "request failed", details)
		} else {
			details["reason"] = appErr.Message
			log.Debug("ErrorHandler", "request rejected", details)
		}

		return ctx.Status(status).SendString(appErr.Message)
	}
}
