package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lerose/boutique/internal/auth"
	"github.com/lerose/boutique/internal/hash"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/repo"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/storage"
)

type testEnv struct {
	t      *testing.T
	e      *echo.Echo
	db     *gorm.DB
	repo   *repo.GormRepo
	secret []byte
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := repo.New(db)
	secret := []byte("test-jwt-secret")

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{
			Svc:       &service.AuthService{Repo: r},
			JWTSecret: secret,
		},
		CatalogHandler: &CatalogHTTP{
			Svc: &service.CatalogService{Repo: r},
		},
		CartHandler: &CartHTTP{
			Svc: &service.CartService{Repo: r},
		},
		OrderHandler: &OrderHTTP{
			Svc: &service.OrderService{Repo: r, Receipts: storage.NewMemStore()},
		},
		NewsletterHandler: &NewsletterHTTP{
			Svc: &service.NewsletterService{Repo: r},
		},
		ReportHandler: &ReportHTTP{
			Svc: &service.ReportService{Repo: r},
		},
		JWTSecret:   secret,
		FrontendURL: "http://localhost:3000",
		Logger:      logging.New("error"),
	})

	return &testEnv{t: t, e: e, db: db, repo: r, secret: secret}
}

func (env *testEnv) doJSON(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	env.t.Helper()

	var resp map[string]any
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (env *testEnv) seedUser(email string, admin bool) *models.User {
	env.t.Helper()

	passwordHash, err := hash.HashPassword("Secret123")
	require.NoError(env.t, err)

	user := &models.User{
		FullName:     "Test Customer",
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      admin,
	}
	require.NoError(env.t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) seedProduct(name, price string) *models.Product {
	env.t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "seeded product",
		Price:       decimal.RequireFromString(price),
		Category:    "ramos",
		Stock:       10,
	}
	require.NoError(env.t, env.db.Create(product).Error)
	return product
}

func (env *testEnv) sessionCookie(user *models.User) *http.Cookie {
	env.t.Helper()

	token, _, err := auth.SignSession(user, env.secret)
	require.NoError(env.t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token, Path: "/"}
}
