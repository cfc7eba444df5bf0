package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Order("created_at DESC")
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CartCountForProduct reports how many active carts contain the product.
// A non-zero count blocks deletion.
func (r *GormRepo) CartCountForProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
