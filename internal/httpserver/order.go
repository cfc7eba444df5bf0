package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/auth"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/repo"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, sess.UserID, req.DeliveryAddress, req.Notes)
	if err != nil {
		return serviceError(c, l, "create_order", err)
	}

	l.Info("create_order_success", "userID", sess.UserID, "orderID", order.ID)
	return ok(c, echo.Map{
		"message": "order created",
		"orderId": order.ID,
		"total":   order.Total.StringFixed(2),
	})
}

// GetOrders returns the caller's own orders, or every order with
// customer details when the caller is an administrator.
func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}

	if sess.IsAdmin {
		orders, items, err := h.Svc.AllOrders(ctx)
		if err != nil {
			return serviceError(c, l, "get_orders", err)
		}
		return ok(c, echo.Map{"orders": adminOrdersPayload(orders, items), "isAdmin": true})
	}

	orders, items, err := h.Svc.UserOrders(ctx, sess.UserID)
	if err != nil {
		return serviceError(c, l, "get_orders", err)
	}

	payload := make([]echo.Map, 0, len(orders))
	for _, o := range orders {
		payload = append(payload, echo.Map{
			"id":               o.ID,
			"total":            o.Total.StringFixed(2),
			"status":           o.Status,
			"receipt_image":    o.ReceiptImage,
			"delivery_address": o.DeliveryAddress,
			"notes":            o.Notes,
			"created_at":       o.CreatedAt,
			"items":            items[o.ID],
		})
	}
	return ok(c, echo.Map{"orders": payload, "isAdmin": false})
}

func adminOrdersPayload(orders []repo.OrderWithCustomer, items map[uint][]repo.OrderItemRow) []echo.Map {
	payload := make([]echo.Map, 0, len(orders))
	for _, o := range orders {
		payload = append(payload, echo.Map{
			"id":               o.ID,
			"total":            o.Total.StringFixed(2),
			"status":           o.Status,
			"receipt_image":    o.ReceiptImage,
			"delivery_address": o.DeliveryAddress,
			"notes":            o.Notes,
			"created_at":       o.CreatedAt,
			"customer_name":    o.CustomerName,
			"customer_email":   o.CustomerEmail,
			"customer_phone":   o.CustomerPhone,
			"items":            items[o.ID],
		})
	}
	return payload
}

// UploadReceipt accepts a multipart image for an order the caller owns.
func (h *OrderHTTP) UploadReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.upload_receipt")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("upload_receipt_rejected", "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		l.Warn("upload_receipt_rejected", "reason", "no file", "error", err)
		return fail(c, "no file received")
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Error("upload_receipt_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	defer src.Close()

	filename, err := h.Svc.AttachReceipt(
		ctx,
		sess.UserID,
		uint(orderID),
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		return serviceError(c, l, "upload_receipt", err)
	}

	l.Info("upload_receipt_success", "orderID", orderID, "filename", filename)
	return ok(c, echo.Map{"message": "receipt uploaded", "filename": filename})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("update_status_rejected", "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStatus(ctx, uint(orderID), req.Status); err != nil {
		return serviceError(c, l, "update_status", err)
	}

	l.Info("update_status_success", "orderID", orderID, "status", req.Status)
	return ok(c, echo.Map{"message": "order status updated to " + req.Status})
}
