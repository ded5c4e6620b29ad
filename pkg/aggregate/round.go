package aggregate

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns n/d*100 rounded half-to-even to two decimal places, or 0 when d is 0.
func Percent(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(n).Mul(hundred).Div(decimal.NewFromInt(d)).RoundBank(2).Float64()
	return f
}

// Ratio returns n/d rounded half-to-even to two decimal places, or 0 when d is 0.
func Ratio(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(n).Div(decimal.NewFromInt(d)).RoundBank(2).Float64()
	return f
}

// Mean returns n/d without rounding, or 0 when d is 0.
func Mean(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
