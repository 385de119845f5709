package service

import (
	"bytes"
	"context"
	"io"
	"log"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
	"github.com/rgbilling/gst-billing/pkg/gst"
	"github.com/rgbilling/gst-billing/pkg/invoicepdf"
	"github.com/rgbilling/gst-billing/pkg/storage"
)

// ExportService renders invoices to PDF and hands them to the export
// destination.
type ExportService struct {
	invoiceService *InvoiceService
	profileService *ProfileService
	renderer       *invoicepdf.Renderer
	destination    storage.Destination
}

// NewExportService creates a new export service
func NewExportService(
	invoiceService *InvoiceService,
	profileService *ProfileService,
	renderer *invoicepdf.Renderer,
	destination storage.Destination,
) *ExportService {
	return &ExportService{
		invoiceService: invoiceService,
		profileService: profileService,
		renderer:       renderer,
		destination:    destination,
	}
}

// ExportResult describes a saved export.
type ExportResult struct {
	FileName string `json:"file_name"`
	Location string `json:"location"`
	Pages    int    `json:"pages"`
}

// FileName is the export name of an invoice.
func (s *ExportService) FileName(invoice *entity.Invoice) string {
	return storage.FileName(invoice.InvoiceNo)
}

// RenderInvoice writes a stored invoice as a PDF.
func (s *ExportService) RenderInvoice(ctx context.Context, id uint, w io.Writer) (*entity.Invoice, *invoicepdf.Result, error) {
	invoice, err := s.invoiceService.GetInvoice(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.renderer.Render(w, s.document(invoice))
	if err != nil {
		return nil, nil, err
	}
	return invoice, result, nil
}

// RenderDraft writes an unsaved invoice as a PDF.
func (s *ExportService) RenderDraft(input *InvoiceInput, w io.Writer) (*invoicepdf.Result, error) {
	return s.renderer.Render(w, s.document(s.invoiceService.build(input)))
}

// ExportInvoice renders a stored invoice and saves it to the destination.
func (s *ExportService) ExportInvoice(ctx context.Context, id uint) (*ExportResult, error) {
	var buf bytes.Buffer
	invoice, result, err := s.RenderInvoice(ctx, id, &buf)
	if err != nil {
		return nil, err
	}

	name := s.FileName(invoice)
	location, err := s.destination.Save(ctx, name, buf.Bytes())
	if err != nil {
		return nil, err
	}

	log.Printf("Exported invoice %d as %s (%d pages)", invoice.ID, location, result.Pages)
	return &ExportResult{FileName: name, Location: location, Pages: result.Pages}, nil
}

// document maps an invoice onto the renderer input. Per-line taxes are
// derived from the stored rows; the aggregate figures are the stored ones.
func (s *ExportService) document(invoice *entity.Invoice) *invoicepdf.Document {
	items := make([]gst.LineItem, 0, len(invoice.Items))
	for _, it := range invoice.Items {
		items = append(items, gst.LineItem{
			Description: it.Description,
			HSN:         it.HSN,
			Qty:         gst.Number(it.Qty),
			Rate:        gst.Number(it.Rate),
			Unit:        it.Unit,
			TaxType:     it.TaxType,
		})
	}
	totals := gst.Compute(items, gst.TaxRates{
		CGST: gst.Number(invoice.CGSTRate),
		SGST: gst.Number(invoice.SGSTRate),
		IGST: gst.Number(invoice.IGSTRate),
	})
	totals.TaxableAmount = invoice.TaxableAmount
	totals.CGSTAmount = invoice.CGSTAmount
	totals.SGSTAmount = invoice.SGSTAmount
	totals.IGSTAmount = invoice.IGSTAmount
	totals.TotalGST = invoice.TotalGST
	totals.GrandTotal = invoice.GrandTotal
	totals.AmountInWords = invoice.AmountInWords

	profile := s.profileService.Current()
	return &invoicepdf.Document{
		InvoiceNo: invoice.InvoiceNo,
		Date:      invoice.Date,
		Customer: invoicepdf.Party{
			Name:      invoice.CustomerName,
			Address:   invoice.CustomerAddress,
			GSTIN:     invoice.CustomerGSTIN,
			StateCode: invoice.StateCode,
		},
		WorkOrderNo: invoice.WorkOrderNo,
		Totals:      totals,
		Notes:       invoice.Notes(),
		BankDetails: invoice.BankDetails,
		Issuer: &invoicepdf.Issuer{
			Name:          profile.Name,
			GSTIN:         profile.GSTIN,
			Contact:       profile.Contact,
			DealsIn:       profile.DealsIn,
			Address:       profile.Address,
			SignatoryName: profile.SignatoryName,
			Signature:     profile.Signature,
			Disclaimer:    profile.Disclaimer,
		},
	}
}
