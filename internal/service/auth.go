package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/hash"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

type RegisterRequest struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Address  string
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)

	if fullName == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	if _, err := s.Repo.UserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return user, nil
}

// Login deliberately reports the same error for an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	s.publish(ctx, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return user, nil
}

func (s *AuthService) publish(ctx context.Context, event map[string]any) {
	key := fmt.Sprint(event["userID"])
	if err := s.Events.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
