package gst

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a lenient numeric form field. It accepts a JSON number or a
// string and decodes anything it cannot read as a finite, non-negative
// value to zero instead of failing.
type Number float64

// Float returns the value as float64, with NaN, infinities and negatives
// read as zero.
func (n Number) Float() float64 {
	return sanitize(float64(n))
}

// UnmarshalJSON never returns an error for malformed input.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}

	*n = Number(ParseNumber(string(data)))
	return nil
}

// ParseNumber coerces a raw form value into a non-negative finite float.
// Blank, malformed, NaN, infinite and negative values all become zero.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
