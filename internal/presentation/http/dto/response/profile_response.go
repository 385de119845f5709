package response

import (
	"time"

	"github.com/rgbilling/gst-billing/internal/domain/entity"
)

// ProfileResponse is the issuer profile without the signature bytes
type ProfileResponse struct {
	Name               string    `json:"name"`
	GSTIN              string    `json:"gstin"`
	Contact            string    `json:"contact"`
	DealsIn            string    `json:"deals_in"`
	Address            string    `json:"address"`
	SignatoryName      string    `json:"signatory_name"`
	HasSignature       bool      `json:"has_signature"`
	SignatureType      string    `json:"signature_type,omitempty"`
	Disclaimer         string    `json:"disclaimer"`
	DefaultNote1       string    `json:"default_note1"`
	DefaultNote2       string    `json:"default_note2"`
	DefaultBankDetails string    `json:"default_bank_details"`
	DefaultCGSTRate    float64   `json:"default_cgst_rate"`
	DefaultSGSTRate    float64   `json:"default_sgst_rate"`
	DefaultIGSTRate    float64   `json:"default_igst_rate"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewProfileResponse maps an issuer profile to its API form
func NewProfileResponse(p *entity.IssuerProfile) *ProfileResponse {
	return &ProfileResponse{
		Name:               p.Name,
		GSTIN:              p.GSTIN,
		Contact:            p.Contact,
		DealsIn:            p.DealsIn,
		Address:            p.Address,
		SignatoryName:      p.SignatoryName,
		HasSignature:       p.HasSignature(),
		SignatureType:      p.SignatureType,
		Disclaimer:         p.Disclaimer,
		DefaultNote1:       p.DefaultNote1,
		DefaultNote2:       p.DefaultNote2,
		DefaultBankDetails: p.DefaultBankDetails,
		DefaultCGSTRate:    p.DefaultCGSTRate,
		DefaultSGSTRate:    p.DefaultSGSTRate,
		DefaultIGSTRate:    p.DefaultIGSTRate,
		UpdatedAt:          p.UpdatedAt,
	}
}
