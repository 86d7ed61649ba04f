package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asif-dev/machbazar-storefront/config"
	"github.com/asif-dev/machbazar-storefront/internal/app/controller"
	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/internal/app/service"
	"github.com/asif-dev/machbazar-storefront/internal/db"
	"github.com/asif-dev/machbazar-storefront/internal/router"
	"github.com/asif-dev/machbazar-storefront/internal/scheduler"
	"github.com/asif-dev/machbazar-storefront/internal/storage"
	"github.com/asif-dev/machbazar-storefront/internal/websocket"
	"github.com/asif-dev/machbazar-storefront/pkg/commerce"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
	"github.com/asif-dev/machbazar-storefront/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", err)
	}

	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect database", err)
	}
	if err := db.Migrate(database); err != nil {
		logger.Fatal("failed to migrate database", err)
	}

	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			// quotes and submission locks degrade to in-process state
			logger.Warn("redis unavailable, running single-instance", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redis.Close()
	}

	gateway, err := commerce.NewClient(commerce.Config{
		BaseURL: cfg.Commerce.BaseURL,
		APIKey:  cfg.Commerce.APIKey,
		Timeout: cfg.Commerce.Timeout,
	})
	if err != nil {
		logger.Fatal("failed to create commerce client", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	cartRepo := repository.NewCartRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)

	quoteService := service.NewQuoteService(gateway, cartRepo, cfg.Checkout.QuoteTTL, hub)
	cartService := service.NewCartService(cartRepo, quoteService, hub)
	catalogService := service.NewCatalogService(gateway)
	checkoutService := service.NewCheckoutService(gateway, cartService, quoteService, cartRepo, submissionRepo, hub)

	archive := storage.NewS3Storage(
		cfg.Export.S3.Region,
		cfg.Export.S3.Bucket,
		cfg.Export.S3.AccessKeyID,
		cfg.Export.S3.SecretAccessKey,
	)
	exportService := service.NewExportService(submissionRepo, archive, time.Hour)

	engine := router.Setup(cfg, router.Controllers{
		Catalog:  controller.NewCatalogController(catalogService),
		Cart:     controller.NewCartController(cartService, catalogService),
		Checkout: controller.NewCheckoutController(quoteService, checkoutService),
		Admin:    controller.NewAdminController(submissionRepo, exportService),
		WS:       controller.NewWSController(hub),
	})

	sweeper := scheduler.NewCartSweeper(cartRepo, cfg.Checkout.CartRetention)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("failed to start cart sweeper", err)
	}
	defer sweeper.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", err)
	}

	logger.Info("server stopped")
}
