package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
)

type NewsletterService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

// Subscribe adds the email to the newsletter. A previously unsubscribed
// email is reactivated instead of duplicated; an already active one is a
// conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}

	existing, err := s.Repo.SubscriberByEmail(ctx, email)
	switch {
	case err == nil && existing.Active:
		return fmt.Errorf("%w: email already subscribed", ErrConflict)
	case err == nil:
		if err := s.Repo.ReactivateSubscriber(ctx, email); err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := &models.NewsletterSubscriber{Email: email, Active: true}
		if err := s.Repo.CreateSubscriber(ctx, sub); err != nil {
			return err
		}
	default:
		return err
	}

	event := map[string]any{"type": "newsletter_subscribed", "email": email}
	if err := s.Events.PublishEvent(ctx, events.TopicUserEvents, email, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}

	return nil
}
