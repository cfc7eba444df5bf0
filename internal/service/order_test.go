package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/storage"
)

func TestOrderService_CreateOrder_TotalAndSnapshot(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	roses := seedProduct(t, r, "Ramo de Rosas", "10.50", 10)
	tulips := seedProduct(t, r, "Tulipanes", "3.25", 10)
	seedCartItem(t, r, user.ID, roses.ID, 2)
	seedCartItem(t, r, user.ID, tulips.ID, 4)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "ring twice")
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, "34.00", order.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Calle 10 #5", order.DeliveryAddress)

	items, err := r.OrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		switch item.Name {
		case "Ramo de Rosas":
			assert.Equal(t, "10.50", item.Price.StringFixed(2))
			assert.Equal(t, uint(2), item.Quantity)
		case "Tulipanes":
			assert.Equal(t, "3.25", item.Price.StringFixed(2))
			assert.Equal(t, uint(4), item.Quantity)
		default:
			t.Fatalf("unexpected line item %q", item.Name)
		}
	}

	// The cart is emptied by the same transaction.
	count, err := r.CartCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "maria@example.com")

	_, err := svc.CreateOrder(context.Background(), user.ID, "Calle 10 #5", "")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrder_MissingAddress(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 1)

	_, err := svc.CreateOrder(context.Background(), user.ID, "   ", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_CreateOrder_RollbackKeepsCart(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 2)

	// Sabotage the line item insert so the transaction fails midway.
	require.NoError(t, r.DB.Migrator().DropTable(&models.OrderItem{}))

	_, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.Error(t, err)

	var orderCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	cartCount, err := r.CartCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cartCount)
}

func TestOrderService_CreateOrder_PriceSnapshotSurvivesChanges(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 3)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.NoError(t, err)
	assert.Equal(t, "45.00", order.Total.StringFixed(2))

	// Raise the price after the order exists.
	product.Price = decimal.RequireFromString("99.99")
	require.NoError(t, r.DB.Save(product).Error)

	items, err := r.OrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "15.00", items[0].Price.StringFixed(2))

	orders, _, err := svc.UserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "45.00", orders[0].Total.StringFixed(2))
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 1)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusCompleted))

	var got models.Order
	require.NoError(t, r.DB.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)

	err = svc.UpdateStatus(ctx, order.ID, "shipped")
	require.ErrorIs(t, err, ErrValidation)

	err = svc.UpdateStatus(ctx, 999, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_AttachReceipt(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r, Receipts: storage.NewMemStore()}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 1)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.NoError(t, err)

	payload := []byte("fake image bytes")
	filename, err := svc.AttachReceipt(ctx, user.ID, order.ID, "image/png", int64(len(payload)), bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Contains(t, filename, "receipt_")
	assert.Contains(t, filename, ".png")

	var got models.Order
	require.NoError(t, r.DB.First(&got, order.ID).Error)
	assert.Equal(t, filename, got.ReceiptImage)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)
}

func TestOrderService_AttachReceipt_Rejections(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r, Receipts: storage.NewMemStore()}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	stranger := seedUser(t, r, "other@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 1)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.NoError(t, err)

	payload := bytes.NewReader([]byte("data"))

	_, err = svc.AttachReceipt(ctx, user.ID, order.ID, "application/pdf", 4, payload)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.AttachReceipt(ctx, user.ID, order.ID, "image/png", MaxReceiptSize+1, payload)
	require.ErrorIs(t, err, ErrValidation)

	// Not the owner: reported as not found, the order's existence leaks nothing.
	_, err = svc.AttachReceipt(ctx, stranger.ID, order.ID, "image/png", 4, payload)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_AllOrders_IncludesCustomer(t *testing.T) {
	t.Parallel()

	r := testRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	user := seedUser(t, r, "maria@example.com")
	product := seedProduct(t, r, "Ramo de Rosas", "15.00", 10)
	seedCartItem(t, r, user.ID, product.ID, 2)

	order, err := svc.CreateOrder(ctx, user.ID, "Calle 10 #5", "")
	require.NoError(t, err)

	orders, items, err := svc.AllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, "Test Customer", orders[0].CustomerName)
	assert.Equal(t, "maria@example.com", orders[0].CustomerEmail)
	require.Len(t, items[order.ID], 1)
	assert.Equal(t, uint(2), items[order.ID][0].Quantity)
}
