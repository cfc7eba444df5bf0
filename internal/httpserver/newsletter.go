package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/transport"
)

type NewsletterHTTP struct {
	Svc *service.NewsletterService
}

func (h *NewsletterHTTP) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "newsletter.subscribe")

	var req transport.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("subscribe_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Subscribe(ctx, req.Email); err != nil {
		return serviceError(c, l, "subscribe", err)
	}

	l.Info("subscribe_success")
	return ok(c, echo.Map{"message": "thanks for subscribing to our newsletter"})
}
