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

type CartHTTP struct {
	Svc *service.CartService
}

// GetCart tolerates anonymous callers: they get an empty cart instead of
// a 401, so the storefront can render its badge before sign-in.
func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return ok(c, echo.Map{"items": []repo.CartLine{}, "total": "0.00"})
	}

	lines, total, err := h.Svc.GetCart(ctx, sess.UserID)
	if err != nil {
		return serviceError(c, l, "get_cart", err)
	}
	if lines == nil {
		lines = []repo.CartLine{}
	}

	return ok(c, echo.Map{"items": lines, "total": total.StringFixed(2)})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	count, err := h.Svc.AddToCart(ctx, sess.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return serviceError(c, l, "add_to_cart", err)
	}

	l.Info("add_to_cart_success", "userID", sess.UserID, "productID", req.ProductID)
	return ok(c, echo.Map{"message": "product added to cart", "cartCount": count})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	sess := auth.CurrentSession(c)
	if sess == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("remove_from_cart_rejected", "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.RemoveFromCart(ctx, sess.UserID, uint(id)); err != nil {
		return serviceError(c, l, "remove_from_cart", err)
	}

	l.Info("remove_from_cart_success", "userID", sess.UserID, "cartID", id)
	return ok(c, echo.Map{"message": "product removed from cart"})
}
