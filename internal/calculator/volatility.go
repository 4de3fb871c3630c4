package calculator

import (
	"math"

	"CryptoPulse/internal/model"
)

// Volatility is the standard deviation of percent changes between
// consecutive points, expressed as a percentage. Returns 0 when fewer
// than two returns can be formed.
func Volatility(s model.HistorySeries) float64 {
	rets := make([]float64, 0, len(s))
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Price
		if prev == 0 {
			continue
		}
		rets = append(rets, (s[i].Price-prev)/prev)
	}
	if len(rets) < 2 {
		return 0
	}
	var mean float64
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var variance float64
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets) - 1)
	return math.Sqrt(variance) * 100.0
}
