package market

import (
	"testing"
	"time"

	"CryptoPulse/internal/model"
)

func sampleAssets() []model.AssetSnapshot {
	return []model.AssetSnapshot{
		{Symbol: "BTC", Name: "Bitcoin", ChangePct24h: 2.0, MarketCapUSD: 500, VolumeUSD24h: 50},
		{Symbol: "ETH", Name: "Ethereum", ChangePct24h: -6.0, MarketCapUSD: 300, VolumeUSD24h: 30},
		{Symbol: "USDT", Name: "Tether", ChangePct24h: 0.0, MarketCapUSD: 100, VolumeUSD24h: 80},
		{Symbol: "SOL", Name: "Solana", ChangePct24h: 7.0, MarketCapUSD: 100, VolumeUSD24h: 20},
	}
}

func TestEvaluate(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	hist := model.HistorySeries{
		{Time: base, Price: 100},
		{Time: base.Add(time.Minute), Price: 110},
		{Time: base.Add(2 * time.Minute), Price: 99},
	}
	book := model.OrderBook{
		Bids: []model.BookLevel{{Price: 99, Qty: 1}},
		Asks: []model.BookLevel{{Price: 101, Qty: 1}},
	}

	stats := Evaluate(Inputs{
		Assets:     sampleAssets(),
		BTCHistory: hist,
		Book:       book,
		Watchlist:  map[string]float64{"ETH": 5.0, "BTC": 5.0},
		Threshold:  5.0,
	})

	if stats.BTCDominance != 50.0 {
		t.Errorf("expected BTC dominance 50, got %.2f", stats.BTCDominance)
	}
	if stats.ETHDominance != 30.0 {
		t.Errorf("expected ETH dominance 30, got %.2f", stats.ETHDominance)
	}
	if stats.StablecoinDominance != 10.0 {
		t.Errorf("expected stablecoin dominance 10, got %.2f", stats.StablecoinDominance)
	}
	if stats.Breadth != 50.0 {
		t.Errorf("expected breadth 50, got %.2f", stats.Breadth)
	}
	if stats.Advancers != 2 || stats.Decliners != 2 {
		t.Errorf("expected 2/2 advance-decline, got %d/%d", stats.Advancers, stats.Decliners)
	}
	if stats.ThresholdUp != 1 || stats.ThresholdDown != 1 {
		t.Errorf("expected 1 up / 1 down at threshold, got %d/%d", stats.ThresholdUp, stats.ThresholdDown)
	}
	if stats.TopGainer == nil || stats.TopGainer.Symbol != "SOL" {
		t.Errorf("expected SOL top gainer, got %+v", stats.TopGainer)
	}
	if stats.TopLoser == nil || stats.TopLoser.Symbol != "ETH" {
		t.Errorf("expected ETH top loser, got %+v", stats.TopLoser)
	}
	if stats.BTCVolatility24h <= 0 {
		t.Errorf("expected positive volatility, got %.4f", stats.BTCVolatility24h)
	}
	if stats.SpreadPct <= 0 {
		t.Errorf("expected positive spread, got %.4f", stats.SpreadPct)
	}
	if stats.Top10VolumeUSD != 180 {
		t.Errorf("expected top10 volume 180, got %.1f", stats.Top10VolumeUSD)
	}
	if stats.WatchlistAlerts != 1 {
		t.Errorf("expected 1 watchlist alert, got %d", stats.WatchlistAlerts)
	}
}

func TestEvaluate_EmptyInputs(t *testing.T) {
	stats := Evaluate(Inputs{Threshold: 5.0})
	if stats.BTCDominance != 0 || stats.Breadth != 0 || stats.BTCVolatility24h != 0 {
		t.Errorf("empty inputs should yield zero stats: %+v", stats)
	}
	if stats.TopGainer != nil || stats.TopLoser != nil {
		t.Error("expected nil movers for empty inputs")
	}
}

func TestFilterCategory(t *testing.T) {
	assets := sampleAssets()

	if got := FilterCategory(assets, "All"); len(got) != len(assets) {
		t.Errorf("All should pass everything, got %d", len(got))
	}
	if got := FilterCategory(assets, "unknown"); len(got) != len(assets) {
		t.Errorf("unknown category should pass everything, got %d", len(got))
	}
	got := FilterCategory(assets, "Stablecoins")
	if len(got) != 1 || got[0].Symbol != "USDT" {
		t.Errorf("expected only USDT, got %+v", got)
	}
	got = FilterCategory(assets, "Layer1")
	if len(got) != 3 {
		t.Errorf("expected BTC/ETH/SOL, got %d assets", len(got))
	}
}
