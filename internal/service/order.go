package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/metrics"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
	"github.com/lerose/boutique/internal/storage"
)

const MaxReceiptSize = 5 << 20 // 5 MB

var receiptExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type OrderService struct {
	Repo     *repo.GormRepo
	Events   *events.Producer
	Receipts *storage.ReceiptStore
}

// CreateOrder converts the user's cart into an order. The order header,
// its line items and the cart clear are one transaction: on any failure
// the cart is left exactly as it was. Prices are captured once, before
// the transaction, and written into the line items; the product rows are
// never re-read. Stock is read with the cart but deliberately not
// decremented or reserved, matching the storefront's existing behavior.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, deliveryAddress, notes string) (*models.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	notes = strings.TrimSpace(notes)
	if deliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrValidation)
	}

	lines, err := s.Repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := &models.Order{
		UserID:          userID,
		Total:           total,
		DeliveryAddress: deliveryAddress,
		Notes:           notes,
		Status:          models.OrderStatusPending,
	}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, line := range lines {
			item := &models.OrderItem{
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Quantity:    line.Quantity,
				Price:       line.Price,
			}
			if err := tx.CreateOrderItem(ctx, item); err != nil {
				return err
			}
		}
		return tx.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	s.publish(ctx, userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total.StringFixed(2),
	})

	return order, nil
}

// UserOrders returns the caller's orders with their line items, newest
// first.
func (s *OrderService) UserOrders(ctx context.Context, userID uint) ([]models.Order, map[uint][]repo.OrderItemRow, error) {
	orders, err := s.Repo.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemsFor(ctx, orderIDs(orders))
	if err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

// AllOrders returns every order joined with customer details, for the
// admin dashboard.
func (s *OrderService) AllOrders(ctx context.Context) ([]repo.OrderWithCustomer, map[uint][]repo.OrderItemRow, error) {
	orders, err := s.Repo.AllOrders(ctx)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.itemsFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if orderID == 0 {
		return fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	rows, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: order not found or status unchanged", ErrNotFound)
	}

	s.publish(ctx, orderID, map[string]any{
		"type":    "order_status_changed",
		"orderID": orderID,
		"status":  status,
	})

	return nil
}

// AttachReceipt validates and stores an uploaded payment receipt for an
// order the user owns, then moves the order to processing. The filename
// embeds the order id and upload time.
func (s *OrderService) AttachReceipt(ctx context.Context, userID, orderID uint, mimeType string, size int64, src io.Reader) (string, error) {
	if orderID == 0 {
		return "", fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	ext, ok := receiptExtensions[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: only JPG, PNG and WEBP images are allowed", ErrValidation)
	}
	if size > MaxReceiptSize {
		return "", fmt.Errorf("%w: file too large (max 5MB)", ErrValidation)
	}

	if _, err := s.Repo.OrderForUser(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return "", err
	}

	filename := fmt.Sprintf("receipt_%d_%d.%s", orderID, time.Now().Unix(), ext)
	if err := s.Receipts.Save(filename, io.LimitReader(src, MaxReceiptSize)); err != nil {
		return "", err
	}

	if err := s.Repo.SetReceipt(ctx, orderID, filename); err != nil {
		return "", err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "receipt_uploaded",
		"userID":  userID,
		"orderID": orderID,
	})

	return filename, nil
}

func (s *OrderService) itemsFor(ctx context.Context, ids []uint) (map[uint][]repo.OrderItemRow, error) {
	items := make(map[uint][]repo.OrderItemRow, len(ids))
	for _, id := range ids {
		rows, err := s.Repo.OrderItems(ctx, id)
		if err != nil {
			return nil, err
		}
		items[id] = rows
	}
	return items, nil
}

func orderIDs(orders []models.Order) []uint {
	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func (s *OrderService) publish(ctx context.Context, key uint, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
