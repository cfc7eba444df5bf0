package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lerose/boutique/internal/models"
)

// CartLine is one cart entry joined with its product's current state.
type CartLine struct {
	CartID      uint            `json:"cart_id"`
	Quantity    uint            `json:"quantity"`
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Stock       uint            `json:"-"`
}

func (r *GormRepo) CartLines(ctx context.Context, userID uint) ([]CartLine, error) {
	var lines []CartLine
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id AS cart_id, cart_items.quantity, products.id AS product_id, " +
			"products.name, products.description, products.price, products.image, products.stock").
		Joins("INNER JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.added_at DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) CartEntry(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateCartEntry(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveCartEntry(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

// CartCount sums the quantities across the user's cart entries.
func (r *GormRepo) CartCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error
	return count, err
}

// DeleteCartEntry removes the entry only when it belongs to the user,
// reporting how many rows actually went away.
func (r *GormRepo) DeleteCartEntry(ctx context.Context, id, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
