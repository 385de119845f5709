package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgbilling/gst-billing/internal/application/service"
	"github.com/rgbilling/gst-billing/internal/domain/repository"
	"github.com/rgbilling/gst-billing/internal/presentation/http/dto/request"
	"github.com/rgbilling/gst-billing/internal/presentation/http/dto/response"
	"github.com/rgbilling/gst-billing/pkg/storage"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, exportService *service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

func toInvoiceInput(req *request.InvoiceRequest) *service.InvoiceInput {
	return &service.InvoiceInput{
		InvoiceNo:       req.InvoiceNo,
		Date:            req.Date,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerGSTIN:   req.CustomerGSTIN,
		StateCode:       req.StateCode,
		WorkOrderNo:     req.WorkOrderNo,
		CGSTRate:        req.CGSTRate,
		SGSTRate:        req.SGSTRate,
		IGSTRate:        req.IGSTRate,
		Items:           req.Items,
		Note1:           req.Note1,
		Note2:           req.Note2,
		BankDetails:     req.BankDetails,
	}
}

func (h *InvoiceHandler) bind(c *gin.Context) (*service.InvoiceInput, bool) {
	var req request.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	return toInvoiceInput(&req), true
}

// Compute handles computing totals for a draft
// @Summary Compute Invoice
// @Description Compute GST breakdown and totals without saving
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body request.InvoiceRequest true "Invoice draft"
// @Success 200 {object} response.APIResponse
// @Router /invoices/compute [post]
func (h *InvoiceHandler) Compute(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}
	response.OK(c, "Invoice computed successfully", h.invoiceService.Compute(input))
}

// Preview handles rendering a draft as an inline PDF
// @Summary Preview Invoice
// @Tags invoices
// @Accept json
// @Produce application/pdf
// @Param request body request.InvoiceRequest true "Invoice draft"
// @Router /invoices/preview.pdf [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if _, err := h.exportService.RenderDraft(input, &buf); err != nil {
		response.Error(c, err)
		return
	}

	name := storage.FileName(input.InvoiceNo)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// List handles listing invoices
// @Summary List Invoices
// @Description List saved invoices, newest first
// @Tags invoices
// @Produce json
// @Param invoice_no query string false "Invoice number contains"
// @Param date query string false "Exact date (dd-mm-yyyy or yyyy-mm-dd)"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), &repository.InvoiceFilterParams{
		InvoiceNo: req.InvoiceNo,
		Date:      req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles saving a new invoice
// @Summary Create Invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body request.InvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	input, ok := h.bind(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice saved successfully", invoice)
}

// Update handles replacing an invoice
// @Summary Update Invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body request.InvoiceRequest true "Invoice data"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}
	input, ok := h.bind(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
// @Summary Delete Invoice
// @Tags invoices
// @Param id path int true "Invoice ID"
// @Success 204
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// PDF handles downloading a saved invoice
// @Summary Download Invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path int true "Invoice ID"
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var buf bytes.Buffer
	invoice, _, err := h.exportService.RenderInvoice(c.Request.Context(), id, &buf)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportService.FileName(invoice)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Export handles saving a rendered invoice to the export destination
// @Summary Export Invoice
// @Tags invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	result, err := h.exportService.ExportInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice exported successfully", result)
}
