package repo

import (
	"context"

	"github.com/shopspring/decimal"
)

type TopCustomer struct {
	ID          uint            `json:"id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type TopProduct struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	TotalSold int64           `json:"total_sold"`
}

func (r *GormRepo) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	var rows []TopCustomer
	err := r.DB.WithContext(ctx).Raw(`
		SELECT u.id, u.full_name, u.email,
		       COUNT(o.id) AS total_orders,
		       SUM(o.total) AS total_spent
		FROM orders o
		INNER JOIN users u ON o.user_id = u.id
		GROUP BY u.id, u.full_name, u.email
		ORDER BY total_orders DESC, total_spent DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.id, p.name, p.category, p.price, p.image,
		       SUM(oi.quantity) AS total_sold
		FROM order_items oi
		INNER JOIN products p ON oi.product_id = p.id
		GROUP BY p.id, p.name, p.category, p.price, p.image
		ORDER BY total_sold DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
