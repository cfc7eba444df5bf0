package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerose/boutique/internal/transport"
)

func TestGetProducts_PublicAndFiltered(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedProduct("Ramo de Rosas", "25.00")
	env.seedProduct("Tulipanes", "12.00")

	rec := env.doJSON(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.decode(rec)
	assert.Equal(t, true, resp["success"])
	products, ok := resp["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 2)

	rec = env.doJSON(http.MethodGet, "/api/v1/products?category=plantas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.decode(rec)["products"])

	rec = env.doJSON(http.MethodGet, "/api/v1/products?category=bonsai", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, env.decode(rec)["success"])
}

func TestSearchProducts_RequiresQuery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/api/v1/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_AdminGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser("maria@example.com", false)
	admin := env.seedUser("admin@example.com", true)

	req := transport.ProductRequest{
		Name:        "Ramo Premium",
		Description: "Dos docenas de rosas",
		Price:       decimal.RequireFromString("49.90"),
		Category:    "premium",
		Stock:       5,
	}

	rec := env.doJSON(http.MethodPost, "/api/v1/admin/products", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/admin/products", req, env.sessionCookie(user))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/admin/products", req, env.sessionCookie(admin))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.decode(rec)
	assert.Equal(t, true, resp["success"])
	assert.NotNil(t, resp["productId"])
}

func TestDeleteProduct_CartGuard(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser("maria@example.com", false)
	admin := env.seedUser("admin@example.com", true)
	product := env.seedProduct("Ramo de Rosas", "25.00")

	rec := env.doJSON(http.MethodPost, "/api/v1/cart", transport.AddToCartRequest{
		ProductID: product.ID, Quantity: 1,
	}, env.sessionCookie(user))
	require.Equal(t, http.StatusOK, rec.Code)

	path := fmt.Sprintf("/api/v1/admin/products/%d/delete", product.ID)

	rec = env.doJSON(http.MethodPost, path, nil, env.sessionCookie(admin))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := env.decode(rec)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["message"], "active cart")

	var item struct{ ID uint }
	require.NoError(t, env.db.Table("cart_items").Where("user_id = ?", user.ID).Take(&item).Error)
	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", item.ID), nil, env.sessionCookie(user))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, path, nil, env.sessionCookie(admin))
	require.Equal(t, http.StatusOK, rec.Code)

	resp = env.decode(rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, `product "Ramo de Rosas" deleted`, resp["message"])
}
