package recap

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Format2 renders a value with exactly two decimals for display, rounding the
// float's exact binary value half away from zero: 1.005 is stored as
// 1.00499... and renders "1.00".
func Format2(v float64) string {
	// 40 decimals keep every digit that can decide the second-decimal rounding.
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', 40, 64))
	return exact.StringFixed(2)
}
