package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindInvalidInput  ErrorKind = "InvalidInput"
	KindInternalError ErrorKind = "InternalError"
)

// InternalErrorMessage is the only body a 500 ever carries.
const InternalErrorMessage = "Something went wrong"

// AppError is the error taxonomy of the HTTP boundary. Message is safe to
// send to clients; Err keeps the cause for logs only.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e.Kind == KindInvalidInput {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternalError, Message: InternalErrorMessage, Err: err}
}

// AsAppError classifies any error. Unknown errors are internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
