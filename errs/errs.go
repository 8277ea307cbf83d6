package errs

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is the single error type handlers return. The HTTP layer renders it
// as {"success":false,"message":...} with the carried status code.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// HTTPErrorHandler funnels every error a handler or middleware returns into
// one response shape. Wire it into echo via e.HTTPErrorHandler.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	switch e := err.(type) {
	case *Error:
		code = e.Code
		message = e.Message
	case *echo.HTTPError:
		code = e.Code
		if m, ok := e.Message.(string); ok {
			message = m
		}
	}

	if writeErr := c.JSON(code, map[string]interface{}{
		"success": false,
		"message": message,
	}); writeErr != nil {
		c.Logger().Errorf("failed to write error response: %v", writeErr)
	}
}
