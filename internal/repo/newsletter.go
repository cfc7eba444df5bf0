package repo

import (
	"context"
	"time"

	"github.com/lerose/boutique/internal/models"
)

func (r *GormRepo) SubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

// ReactivateSubscriber flips an inactive subscription back on with a
// fresh subscription timestamp.
func (r *GormRepo) ReactivateSubscriber(ctx context.Context, email string) error {
	return r.DB.WithContext(ctx).
		Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"active":        true,
			"subscribed_at": time.Now(),
		}).Error
}
