package entity

import "time"

// IssuerProfileID is the primary key of the single issuer profile row.
const IssuerProfileID = 1

// IssuerProfile is the business printed on every invoice, plus the defaults
// used to pre-fill new invoices.
type IssuerProfile struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Name          string    `gorm:"size:255" json:"name"`
	GSTIN         string    `gorm:"column:gstin;size:20" json:"gstin"`
	Contact       string    `gorm:"size:100" json:"contact"`
	DealsIn       string    `gorm:"type:text" json:"deals_in"`
	Address       string    `gorm:"type:text" json:"address"`
	SignatoryName string    `gorm:"size:255" json:"signatory_name"`
	Signature     []byte    `json:"-"`
	SignatureType string    `gorm:"size:50" json:"signature_type,omitempty"`
	Disclaimer    string    `gorm:"type:text" json:"disclaimer"`
	UpdatedAt     time.Time `json:"updated_at"`

	DefaultNote1       string  `gorm:"type:text" json:"default_note1"`
	DefaultNote2       string  `gorm:"type:text" json:"default_note2"`
	DefaultBankDetails string  `gorm:"type:text" json:"default_bank_details"`
	DefaultCGSTRate    float64 `gorm:"column:default_cgst_rate" json:"default_cgst_rate"`
	DefaultSGSTRate    float64 `gorm:"column:default_sgst_rate" json:"default_sgst_rate"`
	DefaultIGSTRate    float64 `gorm:"column:default_igst_rate" json:"default_igst_rate"`
}

// TableName returns the table name for the IssuerProfile model
func (IssuerProfile) TableName() string {
	return "issuer_profiles"
}

// HasSignature reports whether a signature image is stored.
func (p *IssuerProfile) HasSignature() bool {
	return len(p.Signature) > 0
}
