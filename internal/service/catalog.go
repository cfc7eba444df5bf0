package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
	"github.com/lerose/boutique/internal/search"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Search *search.Index
}

type ProductRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       uint
	Image       string
}

func (req *ProductRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if req.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !req.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	if !models.ValidCategory(req.Category) {
		return fmt.Errorf("%w: invalid category %q", ErrValidation, req.Category)
	}
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	if category != "" && category != "all" && !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrValidation, category)
	}
	return s.Repo.ListProducts(ctx, category)
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	return s.Search.Search(ctx, query, from, size)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product)
	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Stock = req.Stock
	product.Image = req.Image

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, product)
	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return product, nil
}

// DeleteProduct refuses to remove a product that sits in someone's cart;
// the error carries the blocking cart count. Historical order items never
// block deletion, they keep their own name and price snapshot.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	cartCount, err := s.Repo.CartCountForProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if cartCount > 0 {
		return nil, fmt.Errorf("%w: product is in %d active cart(s)", ErrConflict, cartCount)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return nil, err
	}

	if err := s.Search.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search index delete failed", "productID", id, "error", err)
	}
	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return product, nil
}

func (s *CatalogService) syncIndex(ctx context.Context, product *models.Product) {
	if err := s.Search.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Warn("search index sync failed", "productID", product.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	key := fmt.Sprint(event["productID"])
	if err := s.Events.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
