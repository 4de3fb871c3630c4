package calculator

import (
	"math"
	"testing"
	"time"

	"CryptoPulse/internal/model"
)

func seriesOf(prices ...float64) model.HistorySeries {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make(model.HistorySeries, len(prices))
	for i, p := range prices {
		out[i] = model.PricePoint{Time: base.Add(time.Duration(i) * time.Minute), Price: p}
	}
	return out
}

func TestVolatility_Flat(t *testing.T) {
	if got := Volatility(seriesOf(100, 100, 100, 100)); got != 0 {
		t.Errorf("flat series: expected 0, got %.6f", got)
	}
}

func TestVolatility_TooShort(t *testing.T) {
	if got := Volatility(nil); got != 0 {
		t.Errorf("empty series: expected 0, got %.6f", got)
	}
	if got := Volatility(seriesOf(100, 101)); got != 0 {
		t.Errorf("single return: expected 0, got %.6f", got)
	}
}

func TestVolatility_KnownValue(t *testing.T) {
	// Returns: +10%, -10%. Mean 0, sample variance 0.01*2/(2-1)=0.02,
	// stddev sqrt(0.02), as percent ~14.142136.
	got := Volatility(seriesOf(100, 110, 99))
	want := math.Sqrt(0.02) * 100
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("expected %.6f, got %.6f", want, got)
	}
}

func TestVolatility_SkipsZeroPrev(t *testing.T) {
	// A zero price cannot form a return with its successor.
	got := Volatility(seriesOf(0, 100, 110, 99))
	want := math.Sqrt(0.02) * 100
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("expected %.6f, got %.6f", want, got)
	}
}
