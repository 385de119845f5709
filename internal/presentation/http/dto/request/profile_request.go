package request

import "github.com/rgbilling/gst-billing/pkg/gst"

// UpdateProfileRequest represents an issuer profile update
type UpdateProfileRequest struct {
	Name               string     `json:"name" binding:"required,max=255"`
	GSTIN              string     `json:"gstin" binding:"max=20"`
	Contact            string     `json:"contact" binding:"max=100"`
	DealsIn            string     `json:"deals_in"`
	Address            string     `json:"address"`
	SignatoryName      string     `json:"signatory_name" binding:"max=255"`
	Disclaimer         string     `json:"disclaimer"`
	DefaultNote1       string     `json:"default_note1"`
	DefaultNote2       string     `json:"default_note2"`
	DefaultBankDetails string     `json:"default_bank_details"`
	DefaultCGSTRate    gst.Number `json:"default_cgst_rate"`
	DefaultSGSTRate    gst.Number `json:"default_sgst_rate"`
	DefaultIGSTRate    gst.Number `json:"default_igst_rate"`
}

// SignatureRequest carries a signature as a base64 data URL
type SignatureRequest struct {
	DataURL string `json:"data_url" binding:"required"`
}
