package transport

import (
	"github.com/shopspring/decimal"

	"github.com/lerose/boutique/internal/models"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserPayload struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func NewUserPayload(u *models.User) UserPayload {
	return UserPayload{ID: u.ID, Name: u.FullName, Email: u.Email, IsAdmin: u.IsAdmin}
}

type AddToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type CreateOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       uint            `json:"stock"`
	Image       string          `json:"image"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}
