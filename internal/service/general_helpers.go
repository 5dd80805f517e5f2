package service

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// dec converts a float64 into a decimal for accumulation.
// Sums of many float64 products drift; decimal keeps totals exact until the
// final conversion back to float64 for the JSON response.
func dec(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// percentOf returns part / whole * 100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func floatPtr(d decimal.Decimal) *float64 {
	f := d.InexactFloat64()
	return &f
}

// maxTimestamp returns the latest non-zero timestamp, or nil when there is none.
func maxTimestamp(timestamps ...int64) *int64 {
	var latest int64
	for _, ts := range timestamps {
		if ts > latest {
			latest = ts
		}
	}
	if latest == 0 {
		return nil
	}
	return &latest
}
