package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/transport"
	"github.com/lerose/boutique/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	products, err := h.Svc.ListProducts(ctx, c.QueryParam("category"))
	if err != nil {
		return serviceError(c, l, "get_products", err)
	}

	return ok(c, echo.Map{"products": products})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Svc.SearchProducts(ctx, q, from, limit)
	if err != nil {
		l.Error("search_products_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}

	return ok(c, echo.Map{"total": total, "products": products})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, service.ProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		return serviceError(c, l, "create_product", err)
	}

	l.Info("create_product_success", "productID", product.ID)
	return ok(c, echo.Map{"message": "product created", "productId": product.ID})
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("update_product_rejected", "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, uint(id), service.ProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		return serviceError(c, l, "update_product", err)
	}

	l.Info("update_product_success", "productID", product.ID)
	return ok(c, echo.Map{"message": "product updated"})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		l.Warn("delete_product_rejected", "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.DeleteProduct(ctx, uint(id))
	if err != nil {
		return serviceError(c, l, "delete_product", err)
	}

	l.Info("delete_product_success", "productID", id)
	return ok(c, echo.Map{"message": fmt.Sprintf("product %q deleted", product.Name)})
}
