package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// AddToCart upserts the (user, product) entry and returns the cart's new
// total item count. Stock is not checked or reserved at add time.
func (s *CartService) AddToCart(ctx context.Context, userID, productID, quantity uint) (int64, error) {
	if productID == 0 || quantity == 0 {
		return 0, fmt.Errorf("%w: product id and quantity must be positive", ErrValidation)
	}

	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return 0, err
	}

	item, err := s.Repo.CartEntry(ctx, userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.Repo.SaveCartEntry(ctx, item); err != nil {
			return 0, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.Repo.CreateCartEntry(ctx, item); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	count, err := s.Repo.CartCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"quantity":  item.Quantity,
	})

	return count, nil
}

// GetCart returns the joined cart lines and the running total of
// quantity x current price.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]repo.CartLine, decimal.Decimal, error) {
	lines, err := s.Repo.CartLines(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return lines, total, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, cartID uint) error {
	if cartID == 0 {
		return fmt.Errorf("%w: invalid cart id", ErrValidation)
	}

	rows, err := s.Repo.DeleteCartEntry(ctx, cartID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: item not found", ErrNotFound)
	}

	s.publish(ctx, userID, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"cartID": cartID,
	})

	return nil
}

func (s *CartService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Events.PublishEvent(ctx, events.TopicCartEvents, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
