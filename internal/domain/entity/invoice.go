package entity

import (
	"time"

	"github.com/rgbilling/gst-billing/pkg/gst"
)

// Invoice is a saved tax invoice header. Totals are stored as computed at
// save time and are never recomputed by the store.
type Invoice struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceNo       string    `gorm:"size:100;not null;index" json:"invoice_no"`
	Date            string    `gorm:"size:20;index" json:"date"`
	CustomerName    string    `gorm:"size:255" json:"customer_name"`
	CustomerAddress string    `gorm:"type:text" json:"customer_address"`
	CustomerGSTIN   string    `gorm:"column:customer_gstin;size:20" json:"customer_gstin"`
	StateCode       string    `gorm:"size:10" json:"state_code"`
	WorkOrderNo     string    `gorm:"size:100" json:"work_order_no"`
	TaxableAmount   float64   `gorm:"default:0" json:"taxable_amount"`
	CGSTRate        float64   `gorm:"column:cgst_rate;default:0" json:"cgst_rate"`
	SGSTRate        float64   `gorm:"column:sgst_rate;default:0" json:"sgst_rate"`
	IGSTRate        float64   `gorm:"column:igst_rate;default:0" json:"igst_rate"`
	CGSTAmount      float64   `gorm:"column:cgst_amount;default:0" json:"cgst_amount"`
	SGSTAmount      float64   `gorm:"column:sgst_amount;default:0" json:"sgst_amount"`
	IGSTAmount      float64   `gorm:"column:igst_amount;default:0" json:"igst_amount"`
	TotalGST        float64   `gorm:"column:total_gst;default:0" json:"total_gst"`
	GrandTotal      float64   `gorm:"default:0" json:"grand_total"`
	AmountInWords   string    `gorm:"type:text" json:"amount_in_words"`
	Note1           string    `gorm:"type:text" json:"note1"`
	Note2           string    `gorm:"type:text" json:"note2"`
	BankDetails     string    `gorm:"type:text" json:"bank_details"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Notes returns the ordered note pair.
func (i *Invoice) Notes() []string {
	return []string{i.Note1, i.Note2}
}

// InvoiceItem is one line of an invoice. SlNo is its 1-based position.
type InvoiceItem struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	InvoiceID   uint        `gorm:"not null;index" json:"-"`
	SlNo        int         `gorm:"not null" json:"sl_no"`
	Description string      `gorm:"type:text" json:"description"`
	HSN         string      `gorm:"column:hsn;size:50" json:"hsn"`
	Qty         float64     `gorm:"default:0" json:"qty"`
	Rate        float64     `gorm:"default:0" json:"rate"`
	Amount      float64     `gorm:"default:0" json:"amount"`
	Unit        string      `gorm:"size:20;default:'Nos.'" json:"unit"`
	TaxType     gst.TaxType `gorm:"size:20;default:'CGST_SGST'" json:"tax_type"`
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceSummary is the list view of an invoice.
type InvoiceSummary struct {
	ID           uint    `json:"id"`
	InvoiceNo    string  `json:"invoice_no"`
	Date         string  `json:"date"`
	CustomerName string  `json:"customer_name"`
	GrandTotal   float64 `json:"grand_total"`
}
