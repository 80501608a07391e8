package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the API server could not be reached.
	ErrUnavailable = errors.New("api server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("api request timed out")

	// ErrNotFound indicates the requested resource does not exist. This is
	// a normal domain outcome for get-by-id lookups, not an exception.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates a missing, expired or rejected bearer token.
	ErrUnauthorized = errors.New("not authorized")
)

// Error is a remote rejection: the server answered with a non-2xx status
// and, optionally, a message body meant for the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// UserMessage returns the server-provided message when present, or a
// generic localized fallback.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Error de comunicación con el servidor"
}

// UserMessage maps any error from this package to the line shown to the
// user. Sentinel failures get a fixed localized message; remote
// rejections surface the server's own text.
func UserMessage(err error) string {
	var apiErr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.UserMessage()
	case errors.Is(err, ErrUnavailable):
		return "No se pudo conectar con el servidor"
	case errors.Is(err, ErrTimeout):
		return "El servidor tardó demasiado en responder"
	case errors.Is(err, ErrNotFound):
		return "Recurso no encontrado"
	case errors.Is(err, ErrUnauthorized):
		return "Sesión no válida, inicia sesión de nuevo"
	default:
		return err.Error()
	}
}
