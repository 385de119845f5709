package gst

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// TaxType selects which GST components apply to a line item.
type TaxType string

const (
	// TaxTypeDomesticSplit is intra-state supply taxed as CGST + SGST.
	TaxTypeDomesticSplit TaxType = "CGST_SGST"
	// TaxTypeInterState is inter-state supply taxed as IGST.
	TaxTypeInterState TaxType = "IGST"
)

// ParseTaxType maps a code or alias to a TaxType. Unknown values fall back
// to TaxTypeDomesticSplit.
func ParseTaxType(s string) TaxType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IGST", "INTERSTATE", "INTER_STATE":
		return TaxTypeInterState
	default:
		return TaxTypeDomesticSplit
	}
}

func (t TaxType) String() string {
	if t == TaxTypeInterState {
		return string(TaxTypeInterState)
	}
	return string(TaxTypeDomesticSplit)
}

// Label is the short form printed in the tax column.
func (t TaxType) Label() string {
	if t == TaxTypeInterState {
		return "IGST"
	}
	return "CGST+SGST"
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*t = TaxTypeDomesticSplit
		return nil
	}
	*t = ParseTaxType(str)
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TaxType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ParseTaxType(v)
	case []byte:
		*t = ParseTaxType(string(v))
	default:
		*t = TaxTypeDomesticSplit
	}
	return nil
}
