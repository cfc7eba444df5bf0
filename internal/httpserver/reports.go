package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/service"
)

type ReportHTTP struct {
	Svc *service.ReportService
}

func (h *ReportHTTP) TopCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.top_customers")

	customers, err := h.Svc.TopCustomers(ctx)
	if err != nil {
		return serviceError(c, l, "top customers", err)
	}

	return ok(c, echo.Map{"topCustomers": customers})
}

func (h *ReportHTTP) TopProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.top_products")

	products, err := h.Svc.TopProducts(ctx)
	if err != nil {
		return serviceError(c, l, "top products", err)
	}

	return ok(c, echo.Map{"topProducts": products})
}
