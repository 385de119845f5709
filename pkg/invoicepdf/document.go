// Package invoicepdf lays out a computed GST invoice on fixed A4 pages.
package invoicepdf

import "github.com/rgbilling/gst-billing/pkg/gst"

// Party is the customer the invoice is billed to.
type Party struct {
	Name      string
	Address   string
	GSTIN     string
	StateCode string
}

// Issuer is the business issuing the invoice. Signature holds raw image
// bytes (JPEG, PNG or GIF) or a base64 data URL; it may be empty.
type Issuer struct {
	Name          string
	GSTIN         string
	Contact       string
	DealsIn       string
	Address       string
	SignatoryName string
	Signature     []byte
	Disclaimer    string
}

// Document is everything the renderer needs. Totals must already be
// computed; the renderer only formats the figures it is given.
type Document struct {
	InvoiceNo   string
	Date        string
	Customer    Party
	WorkOrderNo string
	Totals      *gst.Totals
	Notes       []string
	BankDetails string
	Issuer      *Issuer
}

// Result describes a finished render.
type Result struct {
	Pages int
}
