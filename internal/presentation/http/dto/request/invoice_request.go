package request

import "github.com/rgbilling/gst-billing/pkg/gst"

// InvoiceRequest is the body of compute, preview, create and update calls.
// Any totals a client sends are ignored; they are always recomputed.
type InvoiceRequest struct {
	InvoiceNo       string         `json:"invoice_no" binding:"max=100"`
	Date            string         `json:"date" binding:"max=20"`
	CustomerName    string         `json:"customer_name" binding:"max=255"`
	CustomerAddress string         `json:"customer_address"`
	CustomerGSTIN   string         `json:"customer_gstin" binding:"max=20"`
	StateCode       string         `json:"state_code" binding:"max=10"`
	WorkOrderNo     string         `json:"work_order_no" binding:"max=100"`
	CGSTRate        *gst.Number    `json:"cgst_rate"`
	SGSTRate        *gst.Number    `json:"sgst_rate"`
	IGSTRate        *gst.Number    `json:"igst_rate"`
	Items           []gst.LineItem `json:"items"`
	Note1           string         `json:"note1"`
	Note2           string         `json:"note2"`
	BankDetails     string         `json:"bank_details"`
}

// InvoiceFilterRequest represents invoice list filters
type InvoiceFilterRequest struct {
	InvoiceNo string `form:"invoice_no"`
	Date      string `form:"date"` // dd-mm-yyyy or yyyy-mm-dd
}
