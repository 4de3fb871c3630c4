package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"CryptoPulse/internal/model"
)

// RawSample is one untrusted history row as upstream APIs deliver it:
// a millisecond timestamp (0 when the field was absent) and the price
// as a decimal string.
type RawSample struct {
	TimeMs int64  `json:"time"`
	Price  string `json:"priceUsd"`
}

// flatSpanEpsilon guards the sparkline division when a series is flat.
const flatSpanEpsilon = 1e-9

// Normalize converts raw samples into a cleaned, time-ordered series.
// Samples with a missing timestamp or a non-numeric, non-finite or
// negative price are dropped. Duplicate timestamps keep the first
// occurrence after a stable sort. An empty result is valid; the caller
// decides whether to substitute fallback data.
func Normalize(raw []RawSample) model.HistorySeries {
	cleaned := make(model.HistorySeries, 0, len(raw))
	for _, r := range raw {
		if r.TimeMs <= 0 {
			continue
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(r.Price), 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			continue
		}
		cleaned = append(cleaned, model.PricePoint{
			Time:  time.UnixMilli(r.TimeMs).UTC(),
			Price: p,
		})
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Time.Before(cleaned[j].Time)
	})

	out := make(model.HistorySeries, 0, len(cleaned))
	for _, p := range cleaned {
		if n := len(out); n > 0 && !out[n-1].Time.Before(p.Time) {
			continue // duplicate timestamp, keep first
		}
		out = append(out, p)
	}
	return out
}

// Sparkline maps a series onto [0, 1] relative to its own min/max,
// suitable for axis-free mini charts. A flat series normalizes to all
// zeros rather than dividing by zero.
func Sparkline(s model.HistorySeries) []float64 {
	if len(s) == 0 {
		return nil
	}
	minP, maxP := s[0].Price, s[0].Price
	for _, p := range s[1:] {
		if p.Price < minP {
			minP = p.Price
		}
		if p.Price > maxP {
			maxP = p.Price
		}
	}
	span := maxP - minP
	if span < flatSpanEpsilon {
		span = flatSpanEpsilon
	}
	out := make([]float64, 0, len(s))
	for _, p := range s {
		v := (p.Price - minP) / span
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
