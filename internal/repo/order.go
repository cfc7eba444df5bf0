package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lerose/boutique/internal/models"
)

// OrderWithCustomer is an order row joined with its user, for the admin
// order list.
type OrderWithCustomer struct {
	ID              uint            `json:"id"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ReceiptImage    string          `json:"receipt_image"`
	DeliveryAddress string          `json:"delivery_address"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
}

// OrderItemRow is a line item rendered for clients: the snapshotted name
// and price, plus the product's image when the product still exists.
type OrderItemRow struct {
	Quantity uint            `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) AllOrders(ctx context.Context) ([]OrderWithCustomer, error) {
	var rows []OrderWithCustomer
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.total, orders.status, orders.receipt_image, "+
			"orders.delivery_address, orders.notes, orders.created_at, "+
			"users.full_name AS customer_name, users.email AS customer_email, "+
			"users.phone AS customer_phone").
		Joins("INNER JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) OrderItems(ctx context.Context, orderID uint) ([]OrderItemRow, error) {
	var rows []OrderItemRow
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.quantity, order_items.price, order_items.product_name AS name, "+
			"COALESCE(products.image, '') AS image").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) OrderForUser(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus reports the number of matched rows so the caller can
// tell "nothing to update" apart from success.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// SetReceipt stores the receipt filename and moves the order to processing.
func (r *GormRepo) SetReceipt(ctx context.Context, orderID uint, filename string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"receipt_image": filename,
			"status":        models.OrderStatusProcessing,
		}).Error
}
