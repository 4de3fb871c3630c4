package view

import (
	"strings"
	"testing"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/session"
)

func TestUSDAbbrev(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1.5K"},
		{2.5e6, "2.5M"},
		{1.95e12, "1.95T"},
		{-3.2e9, "-3.2B"},
	}
	for _, tt := range tests {
		if got := USDAbbrev(tt.value); got != tt.want {
			t.Errorf("USDAbbrev(%g): expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestTickerLine(t *testing.T) {
	assets := []model.AssetSnapshot{
		{Symbol: "BTC", PriceUSD: 60000, ChangePct24h: 1.5},
		{Symbol: "ETH", PriceUSD: 3000, ChangePct24h: -2.25},
	}
	line := TickerLine(assets, []string{"markets rally"})

	if !strings.Contains(line, "BTC $60,000 +1.50%") {
		t.Errorf("missing BTC entry: %q", line)
	}
	if !strings.Contains(line, "ETH $3,000 -2.25%") {
		t.Errorf("missing ETH entry: %q", line)
	}
	if !strings.Contains(line, "markets rally") {
		t.Errorf("missing headline: %q", line)
	}
	if strings.Count(line, " | ") != 2 {
		t.Errorf("expected 2 separators, got %q", line)
	}
}

func TestGlobe_Payload(t *testing.T) {
	assets := []model.AssetSnapshot{{Symbol: "BTC"}, {Symbol: "ETH"}}
	p := Globe(assets, session.GlobeParams{
		AutoRotate:     true,
		RotateSpeed:    1.0,
		CameraDistance: 420,
		ExtraPoints:    20,
	})

	if !p.AutoRotate || p.CameraDistance != 420 {
		t.Errorf("camera params not carried through: %+v", p)
	}

	if len(p.Hubs) != len(tradingHubs) {
		t.Errorf("expected %d hubs, got %d", len(tradingHubs), len(p.Hubs))
	}
	if len(p.Nodes) != 20 {
		t.Errorf("expected 20 extra nodes, got %d", len(p.Nodes))
	}
	for i := 1; i < len(p.Hubs); i++ {
		if p.Hubs[i-1].VolumeUSD < p.Hubs[i].VolumeUSD {
			t.Fatal("hubs not sorted by volume descending")
		}
	}
	for _, n := range p.Nodes {
		if n.Lat < -70 || n.Lat > 70 || n.Lon < -180 || n.Lon > 180 {
			t.Fatalf("node out of coordinate bounds: %+v", n)
		}
	}
}
