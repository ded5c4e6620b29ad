package tabular

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatFloat renders v in its shortest form with at least one decimal
// place ("17.0", "66.67").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FormatInt renders n with thousands separators ("12,345").
func FormatInt(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent renders v with two decimals and a percent sign ("12.50%").
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).RoundBank(2).StringFixed(2) + "%"
}

// FormatWhole rounds v half-to-even and renders it with thousands separators.
func FormatWhole(v float64) string {
	return humanize.Comma(decimal.NewFromFloat(v).RoundBank(0).IntPart())
}
