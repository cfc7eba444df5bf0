package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/lerose/boutique/internal/auth"
	"github.com/lerose/boutique/internal/metrics"
)

type Deps struct {
	AuthHandler       *AuthHTTP
	CatalogHandler    *CatalogHTTP
	CartHandler       *CartHTTP
	OrderHandler      *OrderHTTP
	NewsletterHandler *NewsletterHTTP
	ReportHandler     *ReportHTTP

	JWTSecret   []byte
	FrontendURL string
	Logger      *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.Pre(ecM.RemoveTrailingSlash())
	e.Use(ecM.Recover())
	e.Use(ecM.RequestID())
	e.Use(ecM.CORSWithConfig(ecM.CORSConfig{
		AllowOrigins:     []string{d.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(RequestLogger(d.Logger))
	e.Use(metrics.Middleware())

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", metrics.Handler())

	v1 := e.Group("/api/v1")

	authG := v1.Group("/auth")
	authG.POST("/register", d.AuthHandler.Register)
	authG.POST("/login", d.AuthHandler.Login)
	authG.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.CatalogHandler.GetProducts)
	v1.GET("/products/search", d.CatalogHandler.SearchProducts)

	v1.POST("/newsletter/subscribe", d.NewsletterHandler.Subscribe)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart, auth.OptionalUser(d.JWTSecret))
	cart.POST("", d.CartHandler.AddToCart, auth.RequireUser(d.JWTSecret))
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart, auth.RequireUser(d.JWTSecret))

	orders := v1.Group("/orders", auth.RequireUser(d.JWTSecret))
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.POST("/:id/receipt", d.OrderHandler.UploadReceipt)

	admin := v1.Group("/admin", auth.RequireAdmin(d.JWTSecret))
	admin.POST("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.POST("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.POST("/products/:id/delete", d.CatalogHandler.DeleteProduct)
	admin.GET("/reports/top-customers", d.ReportHandler.TopCustomers)
	admin.GET("/reports/top-products", d.ReportHandler.TopProducts)
}
