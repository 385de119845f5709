// Package gst computes Indian GST breakdowns for invoice line items.
package gst

// DefaultUnit is used when a line item leaves its unit blank.
const DefaultUnit = "Nos."

// LineItem is a raw invoice row as captured by the form.
type LineItem struct {
	Description string  `json:"description"`
	HSN         string  `json:"hsn"`
	Qty         Number  `json:"qty"`
	Rate        Number  `json:"rate"`
	Unit        string  `json:"unit"`
	TaxType     TaxType `json:"tax_type"`
}

// TaxRates holds the three GST percentages applied to an invoice.
type TaxRates struct {
	CGST Number `json:"cgst"`
	SGST Number `json:"sgst"`
	IGST Number `json:"igst"`
}

// Rates is TaxRates after coercion.
type Rates struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// Combined is the rate applied to an item of the given type.
func (r Rates) Combined(t TaxType) float64 {
	if t == TaxTypeInterState {
		return r.IGST
	}
	return r.CGST + r.SGST
}

// ComputedItem is a line item with its coerced inputs and derived amounts.
type ComputedItem struct {
	SlNo        int     `json:"sl_no"`
	Description string  `json:"description"`
	HSN         string  `json:"hsn"`
	Unit        string  `json:"unit"`
	TaxType     TaxType `json:"tax_type"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	IGST        float64 `json:"igst"`
	TaxAmount   float64 `json:"tax_amount"`
	LineTotal   float64 `json:"line_total"`
}

// Totals is the full result of Compute.
type Totals struct {
	Items         []ComputedItem `json:"items"`
	Rates         Rates          `json:"rates"`
	TaxableAmount float64        `json:"taxable_amount"`
	CGSTAmount    float64        `json:"cgst_amount"`
	SGSTAmount    float64        `json:"sgst_amount"`
	IGSTAmount    float64        `json:"igst_amount"`
	TotalGST      float64        `json:"total_gst"`
	GrandTotal    float64        `json:"grand_total"`
	AmountInWords string         `json:"amount_in_words"`
}

// Compute derives per-item and aggregate amounts. Each item is taxed either
// as IGST (inter-state) or as CGST + SGST, never both, and only when its
// amount is positive. It never fails; malformed numbers count as zero.
func Compute(items []LineItem, rates TaxRates) *Totals {
	r := Rates{
		CGST: sanitize(rates.CGST.Float()),
		SGST: sanitize(rates.SGST.Float()),
		IGST: sanitize(rates.IGST.Float()),
	}

	t := &Totals{
		Items: make([]ComputedItem, 0, len(items)),
		Rates: r,
	}

	for i, it := range items {
		qty := sanitize(it.Qty.Float())
		rate := sanitize(it.Rate.Float())
		amount := qty * rate

		ci := ComputedItem{
			SlNo:        i + 1,
			Description: it.Description,
			HSN:         it.HSN,
			Unit:        it.Unit,
			TaxType:     ParseTaxType(string(it.TaxType)),
			Qty:         qty,
			Rate:        rate,
			Amount:      amount,
		}
		if ci.Unit == "" {
			ci.Unit = DefaultUnit
		}

		if amount > 0 {
			if ci.TaxType == TaxTypeInterState {
				ci.IGST = amount * r.IGST / 100
			} else {
				ci.CGST = amount * r.CGST / 100
				ci.SGST = amount * r.SGST / 100
			}
		}
		ci.TaxAmount = ci.CGST + ci.SGST + ci.IGST
		ci.LineTotal = ci.Amount + ci.TaxAmount

		t.TaxableAmount += ci.Amount
		t.CGSTAmount += ci.CGST
		t.SGSTAmount += ci.SGST
		t.IGSTAmount += ci.IGST
		t.Items = append(t.Items, ci)
	}

	t.TotalGST = t.CGSTAmount + t.SGSTAmount + t.IGSTAmount
	t.GrandTotal = t.TaxableAmount + t.TotalGST
	t.AmountInWords = AmountInWords(RoundRupees(t.GrandTotal))

	return t
}
