package service

import (
	"context"
	"strings"
	"time"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
	"github.com/rgbilling/gst-billing/internal/domain/repository"
	"github.com/rgbilling/gst-billing/pkg/apperror"
	"github.com/rgbilling/gst-billing/pkg/gst"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo    repository.InvoiceRepository
	profileService *ProfileService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, profileService *ProfileService) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		profileService: profileService,
	}
}

// InvoiceInput represents the input for computing or saving an invoice.
// Nil rates fall back to the issuer profile defaults.
type InvoiceInput struct {
	InvoiceNo       string
	Date            string
	CustomerName    string
	CustomerAddress string
	CustomerGSTIN   string
	StateCode       string
	WorkOrderNo     string
	CGSTRate        *gst.Number
	SGSTRate        *gst.Number
	IGSTRate        *gst.Number
	Items           []gst.LineItem
	Note1           string
	Note2           string
	BankDetails     string
}

// ComputedInvoice is a draft with its totals worked out.
type ComputedInvoice struct {
	gst.Totals
}

// Compute works out totals for a draft without saving anything.
func (s *InvoiceService) Compute(input *InvoiceInput) *ComputedInvoice {
	return &ComputedInvoice{Totals: *gst.Compute(input.Items, s.rates(input))}
}

// CreateInvoice saves a new invoice with freshly computed totals
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *InvoiceInput) (*entity.Invoice, error) {
	invoice := s.build(input)
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// ListInvoices returns invoice summaries, newest first. A yyyy-mm-dd date
// filter is matched against the stored dd-mm-yyyy form.
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.InvoiceSummary, error) {
	if params != nil {
		filter := *params
		filter.Date = normalizeDate(filter.Date)
		params = &filter
	}
	return s.invoiceRepo.List(ctx, params)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// UpdateInvoice replaces the header and the whole item list of an invoice
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uint, input *InvoiceInput) (*entity.Invoice, error) {
	if id == 0 {
		return nil, apperror.ErrMissingInvoiceID
	}

	invoice := s.build(input)
	invoice.ID = id

	found, err := s.invoiceRepo.Replace(ctx, invoice)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.GetWithItems(ctx, id)
}

// DeleteInvoice removes an invoice and its items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uint) error {
	deleted, err := s.invoiceRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Invoice")
	}
	return nil
}

func (s *InvoiceService) rates(input *InvoiceInput) gst.TaxRates {
	profile := s.profileService.Current()
	pick := func(n *gst.Number, fallback float64) gst.Number {
		if n == nil {
			return gst.Number(fallback)
		}
		return *n
	}
	return gst.TaxRates{
		CGST: pick(input.CGSTRate, profile.DefaultCGSTRate),
		SGST: pick(input.SGSTRate, profile.DefaultSGSTRate),
		IGST: pick(input.IGSTRate, profile.DefaultIGSTRate),
	}
}

// build computes totals and maps the input onto a new entity. Blank notes
// and bank details take the profile defaults.
func (s *InvoiceService) build(input *InvoiceInput) *entity.Invoice {
	totals := gst.Compute(input.Items, s.rates(input))
	profile := s.profileService.Current()

	invoice := &entity.Invoice{
		InvoiceNo:       strings.TrimSpace(input.InvoiceNo),
		Date:            strings.TrimSpace(input.Date),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerAddress: input.CustomerAddress,
		CustomerGSTIN:   strings.ToUpper(strings.TrimSpace(input.CustomerGSTIN)),
		StateCode:       strings.TrimSpace(input.StateCode),
		WorkOrderNo:     strings.TrimSpace(input.WorkOrderNo),
		TaxableAmount:   totals.TaxableAmount,
		CGSTRate:        totals.Rates.CGST,
		SGSTRate:        totals.Rates.SGST,
		IGSTRate:        totals.Rates.IGST,
		CGSTAmount:      totals.CGSTAmount,
		SGSTAmount:      totals.SGSTAmount,
		IGSTAmount:      totals.IGSTAmount,
		TotalGST:        totals.TotalGST,
		GrandTotal:      totals.GrandTotal,
		AmountInWords:   totals.AmountInWords,
		Note1:           defaultIfBlank(input.Note1, profile.DefaultNote1),
		Note2:           defaultIfBlank(input.Note2, profile.DefaultNote2),
		BankDetails:     defaultIfBlank(input.BankDetails, profile.DefaultBankDetails),
		Items:           make([]entity.InvoiceItem, 0, len(totals.Items)),
	}

	for _, it := range totals.Items {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			SlNo:        it.SlNo,
			Description: it.Description,
			HSN:         it.HSN,
			Qty:         it.Qty,
			Rate:        it.Rate,
			Amount:      it.Amount,
			Unit:        it.Unit,
			TaxType:     it.TaxType,
		})
	}
	return invoice
}

// normalizeDate turns a date picker value (yyyy-mm-dd) into the stored
// dd-mm-yyyy form. Anything else is passed through.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("02-01-2006")
	}
	return s
}

func defaultIfBlank(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
