package collector

import (
	"math"
	"testing"
	"time"
)

func TestFallbackSeries_Shape(t *testing.T) {
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s := FallbackSeries(30, time.Minute, end)
	if len(s) != 30 {
		t.Fatalf("expected 30 points, got %d", len(s))
	}
	if !s[len(s)-1].Time.Equal(end) {
		t.Errorf("last point should land on end, got %v", s[len(s)-1].Time)
	}
	for i, p := range s {
		if p.Price < 1 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			t.Fatalf("point %d has bad price %v", i, p.Price)
		}
		if i > 0 && !s[i-1].Time.Before(p.Time) {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
	}
}

func TestFallbackSeries_MinimumLength(t *testing.T) {
	s := FallbackSeries(2, time.Minute, time.Now())
	if len(s) < minFallbackPoints {
		t.Errorf("expected at least %d points, got %d", minFallbackPoints, len(s))
	}
}

func TestFallbackAssets(t *testing.T) {
	assets := FallbackAssets()
	if len(assets) == 0 {
		t.Fatal("expected non-empty asset list")
	}
	for _, a := range assets {
		if a.Symbol == "" || a.PriceUSD <= 0 || a.MarketCapUSD <= 0 {
			t.Errorf("malformed fallback asset: %+v", a)
		}
	}
}

func TestFallbackGas_Positive(t *testing.T) {
	for i := 0; i < 50; i++ {
		gas := FallbackGas()
		if gas.Low < 1 || gas.Avg < 1 || gas.Fast < 1 {
			t.Fatalf("gas tiers must be >= 1, got %+v", gas)
		}
		if gas.Low > gas.Fast {
			t.Fatalf("low tier above fast tier: %+v", gas)
		}
	}
}

func TestFallbackHeadlines_Limit(t *testing.T) {
	if got := FallbackHeadlines(3); len(got) != 3 {
		t.Errorf("expected 3 headlines, got %d", len(got))
	}
	if got := FallbackHeadlines(100); len(got) != len(fallbackHeadlines) {
		t.Errorf("oversized limit should cap, got %d", len(got))
	}
	if got := FallbackHeadlines(-1); len(got) != 0 {
		t.Errorf("negative limit should yield none, got %d", len(got))
	}
}
