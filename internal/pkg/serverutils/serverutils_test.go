package serverutils

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"notes-app/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(log)})
	app.Use(RequestLogger(log))
	app.Get("/", handler)
	return app
}

func readBody(t *testing.T, app *fiber.App) (int, string, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header.Get(RequestIDHeader)
}

func TestErrorHandlerInvalidInput(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return InvalidInput("Title and content fields are required")
	})

	status, body, requestID := readBody(t, app)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Title and content fields are required", body)
	assert.NotEmpty(t, requestID)
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return fmt.Errorf("update note 9: %w", errors.New("pq: connection refused"))
	})

	status, body, _ := readBody(t, app)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, InternalErrorMessage, body)
	assert.NotContains(t, body, "pq")
}

func TestErrorHandlerKeepsFiberStatus(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})

	status, _, _ := readBody(t, app)

	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("controller: %w", InvalidInput("bad"))
	assert.Equal(t, KindInvalidInput, AsAppError(wrapped).Kind)

	cause := errors.New("disk full")
	appErr := AsAppError(cause)
	assert.Equal(t, KindInternalError, appErr.Kind)
	assert.ErrorIs(t, appErr, cause)
}

func TestValidateRequest(t *testing.T) {
	type body struct {
		Title   string `validate:"required"`
		Content string `validate:"required"`
	}

	assert.NoError(t, ValidateRequest(body{Title: "A", Content: "B"}))
	assert.Error(t, ValidateRequest(body{Title: "A"}))
	assert.Error(t, ValidateRequest(body{Content: "B"}))
	// whitespace is a value, not an absence
	assert.NoError(t, ValidateRequest(body{Title: " ", Content: " "}))
}
