package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
	domainRepo "github.com/rgbilling/gst-billing/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(invoice).Error; err != nil {
			return err
		}
		return insertItems(tx, invoice)
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.InvoiceSummary, error) {
	summaries := []entity.InvoiceSummary{}

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select("id", "invoice_no", "date", "customer_name", "grand_total")

	if params != nil {
		if no := strings.TrimSpace(params.InvoiceNo); no != "" {
			query = query.Where("LOWER(invoice_no) LIKE ?", "%"+strings.ToLower(no)+"%")
		}
		if params.Date != "" {
			query = query.Where("date = ?", params.Date)
		}
	}

	err := query.Order("id DESC").Find(&summaries).Error
	return summaries, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uint) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sl_no ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Replace overwrites the header and swaps the whole item list. It reports
// false when no invoice has the given ID.
func (r *invoiceRepository) Replace(ctx context.Context, invoice *entity.Invoice) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Invoice{}).Where("id = ?", invoice.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		found = true

		if err := tx.Model(&entity.Invoice{ID: invoice.ID}).
			Select("*").
			Omit("ID", "CreatedAt", "Items").
			Updates(invoice).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, invoice)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Invoice{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *invoiceRepository) CountItems(ctx context.Context, invoiceID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error
	return count, err
}

// insertItems numbers the items 1..N in list order and stores them.
func insertItems(tx *gorm.DB, invoice *entity.Invoice) error {
	if len(invoice.Items) == 0 {
		return nil
	}
	for i := range invoice.Items {
		invoice.Items[i].ID = 0
		invoice.Items[i].InvoiceID = invoice.ID
		invoice.Items[i].SlNo = i + 1
	}
	return tx.Create(&invoice.Items).Error
}
