package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories the boutique sells. Category values outside this
// set are rejected at the service layer.
var Categories = []string{"ramos", "arreglos", "plantas", "premium", "packs"}

// Order lifecycle statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"isAdmin"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string          `gorm:"not null"                     json:"name"`
	Description string          `gorm:"not null"                     json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"price"`
	Category    string          `gorm:"index;not null"               json:"category"`
	Stock       uint            `json:"stock"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CartItem holds one (user, product) pair. The unique index is what makes
// a repeated add an increment instead of a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                       json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"       json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product"       json:"product_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                        json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime"                                   json:"added_at"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey"                   json:"id"`
	UserID          uint            `gorm:"index;not null"               json:"user_id"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"total"`
	DeliveryAddress string          `gorm:"not null"                     json:"delivery_address"`
	Notes           string          `json:"notes"`
	Status          string          `gorm:"not null;default:pending"     json:"status"`
	ReceiptImage    string          `json:"receipt_image"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItem snapshots the product's name and price at order time, so the
// row stays meaningful even after the product itself is deleted.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"                   json:"id"`
	OrderID     uint            `gorm:"index;not null"               json:"order_id"`
	ProductID   uint            `gorm:"not null"                     json:"product_id"`
	ProductName string          `gorm:"not null"                     json:"name"`
	Quantity    uint            `gorm:"not null;check:quantity>0"    json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"  json:"price"`
}

type NewsletterSubscriber struct {
	ID           uint      `gorm:"primaryKey"            json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	Active       bool      `gorm:"not null;default:true" json:"is_active"`
	SubscribedAt time.Time `gorm:"autoCreateTime"        json:"subscription_date"`
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
