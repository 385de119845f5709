package repository

import (
	"context"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice data operations.
// Header and items are always written together in one transaction.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.InvoiceSummary, error)
	GetWithItems(ctx context.Context, id uint) (*entity.Invoice, error)
	Replace(ctx context.Context, invoice *entity.Invoice) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	CountItems(ctx context.Context, invoiceID uint) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	InvoiceNo string
	Date      string
}
