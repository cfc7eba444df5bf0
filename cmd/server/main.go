package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/config"
	"github.com/lerose/boutique/internal/events"
	"github.com/lerose/boutique/internal/httpserver"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/repo"
	"github.com/lerose/boutique/internal/search"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("db init failed", "error", err)
		os.Exit(1)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var index *search.Index
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			logger.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
		index = search.NewIndex(esClient, "products")
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	r := repo.New(db)
	receipts := storage.NewOSStore(cfg.UPLOAD_DIR)
	secret := []byte(cfg.JWT_SECRET)

	e := echo.New()
	e.HideBanner = true

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:       &service.AuthService{Repo: r, Events: producer},
			JWTSecret: secret,
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Repo: r, Events: producer, Search: index},
		},
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: r, Events: producer},
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Repo: r, Events: producer, Receipts: receipts},
		},
		NewsletterHandler: &httpserver.NewsletterHTTP{
			Svc: &service.NewsletterService{Repo: r, Events: producer},
		},
		ReportHandler: &httpserver.ReportHTTP{
			Svc: &service.ReportService{Repo: r},
		},
		JWTSecret:   secret,
		FrontendURL: cfg.FRONTEND_URL,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
