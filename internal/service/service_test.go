package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/hash"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.NewsletterSubscriber{},
	))

	return db
}

func testRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(testDB(t))
}

func seedUser(t *testing.T, r *repo.GormRepo, email string) *models.User {
	t.Helper()

	passwordHash, err := hash.HashPassword("Secret123")
	require.NoError(t, err)

	user := &models.User{
		FullName:     "Test Customer",
		Email:        email,
		PasswordHash: passwordHash,
	}
	require.NoError(t, r.DB.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, price string, stock uint) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "seeded product",
		Price:       decimal.RequireFromString(price),
		Category:    "ramos",
		Stock:       stock,
	}
	require.NoError(t, r.DB.Create(product).Error)
	return product
}

func seedCartItem(t *testing.T, r *repo.GormRepo, userID, productID, quantity uint) *models.CartItem {
	t.Helper()

	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	require.NoError(t, r.DB.Create(item).Error)
	return item
}
