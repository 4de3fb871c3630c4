package view

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

var capAbbrev = []string{"", "K", "M", "B", "T"}

// USDAbbrev renders a dollar amount with a K/M/B/T suffix, e.g.
// 1.95e12 -> "1.95T".
func USDAbbrev(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	i := 0
	for value >= 1000 && i < len(capAbbrev)-1 {
		value /= 1000.0
		i++
	}
	return fmt.Sprintf("%s%s%s", sign, humanize.CommafWithDigits(value, 2), capAbbrev[i])
}

// Price renders a price with thousands separators and two decimals.
func Price(value float64) string {
	return humanize.CommafWithDigits(value, 2)
}
