package gst

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// en-IN groups thousands, then every two digits: 12,34,567.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders v with two decimals and Indian digit grouping:
// 1234567.5 -> "12,34,567.50". Halves round away from zero.
func FormatINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	if rounded == 0 {
		rounded = 0 // drop a negative zero
	}
	return inr.Sprint(number.Decimal(rounded, number.Scale(2)))
}

// FormatRate renders a percentage without trailing zeros: 9 -> "9", 2.5 -> "2.5".
func FormatRate(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
