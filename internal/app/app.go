// Package app wires the store, services and export destination shared by
// the API server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/rgbilling/gst-billing/internal/application/service"
	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/infrastructure/database"
	"github.com/rgbilling/gst-billing/internal/infrastructure/repository"
	"github.com/rgbilling/gst-billing/pkg/invoicepdf"
	"github.com/rgbilling/gst-billing/pkg/storage"
	"gorm.io/gorm"
)

// App holds the wired services.
type App struct {
	DB       *gorm.DB
	Profiles *service.ProfileService
	Invoices *service.InvoiceService
	Exports  *service.ExportService
}

// New connects to the database, migrates it, loads the issuer profile and
// builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	destination, err := storage.NewDestinationFromConfig(
		cfg.Export.Destination,
		cfg.Export.Dir,
		cfg.Export.S3Region,
		cfg.Export.S3Bucket,
		cfg.Export.S3Prefix,
	)
	if err != nil {
		return nil, err
	}

	a := Wire(db, &cfg.Issuer, destination)
	if err := a.Profiles.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load issuer profile: %w", err)
	}
	return a, nil
}

// Wire builds the services on an open database. The profile is not loaded.
func Wire(db *gorm.DB, issuer *config.IssuerConfig, destination storage.Destination) *App {
	invoiceRepo := repository.NewInvoiceRepository(db)
	profileRepo := repository.NewIssuerProfileRepository(db)

	profiles := service.NewProfileService(profileRepo, issuer)
	invoices := service.NewInvoiceService(invoiceRepo, profiles)
	exports := service.NewExportService(invoices, profiles, invoicepdf.NewRenderer(), destination)

	return &App{
		DB:       db,
		Profiles: profiles,
		Invoices: invoices,
		Exports:  exports,
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
