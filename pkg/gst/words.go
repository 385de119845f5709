package gst

import (
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
	hundred  = 100
)

var ones = [...]string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var bigCrore = big.NewInt(crore)

// RoundRupees rounds an amount half-up to whole rupees. The result is exact
// for any finite amount.
func RoundRupees(v float64) decimal.Decimal {
	return decimal.NewFromFloat(sanitize(v)).Round(0)
}

// AmountInWords spells a whole-rupee amount using the Indian numbering
// system, e.g. 150000 -> "One lakh fifty thousand rupees only". Crore counts
// of 100 or more are themselves spelled with lakh/thousand groups.
func AmountInWords(rupees decimal.Decimal) string {
	n := rupees.Round(0).BigInt()
	if n.Sign() <= 0 {
		return "Zero rupees only"
	}
	return capitalize(indian(n)) + " rupees only"
}

func indian(n *big.Int) string {
	var parts []string
	if n.Cmp(bigCrore) >= 0 {
		c, rest := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
		parts = append(parts, indian(c)+" crore")
		n = rest
	}
	if words := belowCrore(n.Int64()); words != "" {
		parts = append(parts, words)
	}
	return strings.Join(parts, " ")
}

func belowCrore(n int64) string {
	var parts []string
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(l)+" lakh")
		n %= lakh
	}
	if th := n / thousand; th > 0 {
		parts = append(parts, belowThousand(th)+" thousand")
		n %= thousand
	}
	if h := n / hundred; h > 0 {
		parts = append(parts, ones[h]+" hundred")
		n %= hundred
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " hundred"
		}
		return ones[n/100] + " hundred " + belowThousand(n%100)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
