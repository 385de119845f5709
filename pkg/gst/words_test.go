package gst

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Zero rupees only"},
		{-5, "Zero rupees only"},
		{1, "One rupees only"},
		{19, "Nineteen rupees only"},
		{20, "Twenty rupees only"},
		{105, "One hundred five rupees only"},
		{1000, "One thousand rupees only"},
		{1999, "One thousand nine hundred ninety nine rupees only"},
		{150000, "One lakh fifty thousand rupees only"},
		{2500050, "Twenty five lakh fifty rupees only"},
		{10000000, "One crore rupees only"},
		{999999999, "Ninety nine crore ninety nine lakh ninety nine thousand nine hundred ninety nine rupees only"},
		{1000000000, "One hundred crore rupees only"},
		{12345678901, "One thousand two hundred thirty four crore fifty six lakh seventy eight thousand nine hundred one rupees only"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(decimal.NewFromInt(tt.in)), "AmountInWords(%d)", tt.in)
	}
}

func TestAmountInWordsLakhPhrase(t *testing.T) {
	got := AmountInWords(decimal.NewFromInt(150000))
	assert.Contains(t, strings.ToLower(got), "one lakh fifty thousand")
	assert.True(t, strings.HasSuffix(got, "rupees only"))
}

func TestRoundRupees(t *testing.T) {
	assert.Equal(t, "3", RoundRupees(2.5).String())
	assert.Equal(t, "2", RoundRupees(2.49).String())
	assert.Equal(t, "16340", RoundRupees(16339.5).String())
	assert.Equal(t, "0", RoundRupees(-3).String())
	assert.Equal(t, "0", RoundRupees(math.Inf(1)).String())
}

func TestAmountInWordsBeyondInt64(t *testing.T) {
	// 1e22 rupees is far past what an int64 holds.
	got := AmountInWords(RoundRupees(1e22))
	assert.Equal(t, "Ten crore crore crore rupees only", got)

	totals := Compute([]LineItem{{Qty: 1e12, Rate: 1e10}}, TaxRates{})
	assert.Equal(t, "Ten crore crore crore rupees only", totals.AmountInWords)

	mixed := AmountInWords(decimal.RequireFromString("12345678901234567890123"))
	assert.True(t, strings.HasPrefix(mixed, "Twelve crore thirty four lakh fifty six thousand seven hundred eighty nine crore one lakh"), mixed)
	assert.True(t, strings.HasSuffix(mixed, "crore seventy eight lakh ninety thousand one hundred twenty three rupees only"), mixed)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "0.00", FormatINR(0))
	assert.Equal(t, "999.00", FormatINR(999))
	assert.Equal(t, "1,000.00", FormatINR(1000))
	assert.Equal(t, "1,50,000.00", FormatINR(150000))
	assert.Equal(t, "12,34,567.50", FormatINR(1234567.5))
	assert.Equal(t, "1,00,00,000.00", FormatINR(10000000))
	assert.Equal(t, "-1,500.25", FormatINR(-1500.25))
	assert.Equal(t, "0.13", FormatINR(0.125))
	assert.Equal(t, "0.00", FormatINR(-0.001))
	assert.Equal(t, "0.00", FormatINR(math.NaN()))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "9", FormatRate(9))
	assert.Equal(t, "2.5", FormatRate(2.5))
	assert.Equal(t, "18", FormatRate(18.0))
}
