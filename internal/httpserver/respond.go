package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/service"
)

// Every endpoint answers with a {success, message?, ...} envelope.
// Logical failures (not found, conflicts, rejected input) stay HTTP 200
// with success:false; 4xx/5xx are reserved for auth, malformed requests
// and store failures.

func ok(c echo.Context, data echo.Map) error {
	payload := echo.Map{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	return c.JSON(http.StatusOK, payload)
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{"success": false, "message": message})
}

var logicalErrors = []error{
	service.ErrValidation,
	service.ErrNotFound,
	service.ErrConflict,
	service.ErrEmptyCart,
	service.ErrInvalidCredentials,
}

// serviceError maps a service failure to the envelope: known sentinels
// become success:false with the human-readable part of the message,
// anything else stays opaque as a 500.
func serviceError(c echo.Context, l *slog.Logger, op string, err error) error {
	for _, sentinel := range logicalErrors {
		if errors.Is(err, sentinel) {
			l.Warn(op+"_rejected", "reason", err.Error())
			return fail(c, messageOf(err, sentinel))
		}
	}
	l.Error(op+"_error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func messageOf(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
