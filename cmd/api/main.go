package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rgbilling/gst-billing/internal/app"
	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/presentation/http/handler"
	"github.com/rgbilling/gst-billing/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect, migrate and load the issuer profile
	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice: handler.NewInvoiceHandler(a.Invoices, a.Exports),
		Profile: handler.NewProfileHandler(a.Profiles, cfg.Upload.MaxSize),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	log.Printf("Starting %s server on %s...", cfg.App.Name, cfg.App.Addr())
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(cfg.App.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
