// Package money centralizes monetary arithmetic. Prices are stored as
// float64 columns; every computed subtotal or total goes through decimal
// arithmetic and is rounded to 2 places before leaving this package.
package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount half-up to 2 decimal places.
func Round2(amount float64) float64 {
	out, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return out
}

// LineSubtotal computes quantity * unitPrice rounded to 2 decimal places.
func LineSubtotal(quantity int, unitPrice float64) float64 {
	sub := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	out, _ := sub.Round(2).Float64()
	return out
}

// Sum adds monetary amounts without accumulating float error and rounds
// the result to 2 decimal places.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	out, _ := total.Round(2).Float64()
	return out
}
