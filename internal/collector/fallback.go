package collector

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"CryptoPulse/internal/model"
)

// Fallback generators produce plausible, correctly shaped data when an
// upstream call fails, so downstream consumers never special-case
// absence. Values are random on purpose; only the shape is guaranteed.

// minFallbackPoints is the floor on synthetic series length.
const minFallbackPoints = 10

// FallbackSeries builds a random-walk price history of n points (at
// least minFallbackPoints) ending at end, spaced by step. Each point
// adds a normally distributed delta to the previous value.
func FallbackSeries(n int, step time.Duration, end time.Time) model.HistorySeries {
	if n < minFallbackPoints {
		n = minFallbackPoints
	}
	if step <= 0 {
		step = 5 * time.Minute
	}
	out := make(model.HistorySeries, n)
	price := 50 + rand.Float64()*50
	t := end.Add(-time.Duration(n-1) * step).UTC()
	for i := 0; i < n; i++ {
		price += rand.NormFloat64() * 0.5
		if price < 1 {
			price = 1
		}
		out[i] = model.PricePoint{Time: t, Price: price}
		t = t.Add(step)
	}
	return out
}

var fallbackSymbols = []string{
	"BTC", "ETH", "USDT", "BNB", "SOL", "XRP", "USDC", "ADA", "DOGE", "TON",
}

// FallbackAssets builds a mock top-asset list.
func FallbackAssets() []model.AssetSnapshot {
	out := make([]model.AssetSnapshot, 0, len(fallbackSymbols))
	for _, sym := range fallbackSymbols {
		out = append(out, model.AssetSnapshot{
			ID:           fmt.Sprintf("%s-mock", sym),
			Symbol:       sym,
			Name:         sym,
			PriceUSD:     100 + rand.Float64()*50000,
			ChangePct24h: -5 + rand.Float64()*10,
			MarketCapUSD: 1e10 + rand.Float64()*9e11,
			VolumeUSD24h: 1e8 + rand.Float64()*5e10,
		})
	}
	return out
}

// FallbackAssetDetail builds a mock detail record preserving the
// requested id.
func FallbackAssetDetail(id string) model.AssetSnapshot {
	return model.AssetSnapshot{
		ID:           id,
		Symbol:       strings.ToUpper(id),
		Name:         id,
		PriceUSD:     100 + rand.Float64()*50000,
		ChangePct24h: -5 + rand.Float64()*10,
		MarketCapUSD: 1e10 + rand.Float64()*9e11,
		VolumeUSD24h: 1e8 + rand.Float64()*5e10,
	}
}

// FallbackOverview builds mock market-wide totals.
func FallbackOverview() model.GlobalOverview {
	return model.GlobalOverview{
		TotalMarketCapUSD: 1.95e12 + (rand.Float64()*2-1)*3e10,
		TotalVolumeUSD24h: 8.2e10 + (rand.Float64()*2-1)*1e10,
	}
}

// FallbackGas builds mock gas tiers around a 20 gwei base.
func FallbackGas() model.GasPrices {
	base := 20.0 + (rand.Float64()*2-1)*5
	gas := model.GasPrices{Low: base * 0.7, Avg: base, Fast: base * 1.3}
	if gas.Low < 1 {
		gas.Low = 1
	}
	if gas.Avg < 1 {
		gas.Avg = 1
	}
	if gas.Fast < 1 {
		gas.Fast = 1
	}
	return gas
}

// FallbackHashrate builds a mock hashrate in EH/s.
func FallbackHashrate() float64 {
	return 350 + (rand.Float64()*2-1)*50
}

// FallbackSentiment builds a neutral-ish index reading.
func FallbackSentiment() model.Sentiment {
	return model.Sentiment{
		Value:          int(50 + (rand.Float64()*2-1)*20),
		Classification: "Neutral",
	}
}

var fallbackHeadlines = []string{
	"Crypto market holds its total capitalization",
	"BTC and ETH steady despite volatility",
	"SOL leads the day's gainers",
	"Volumes climb across major venues",
	"Fresh capital flows into the market",
}

// FallbackHeadlines returns up to limit canned headlines.
func FallbackHeadlines(limit int) []string {
	if limit > len(fallbackHeadlines) {
		limit = len(fallbackHeadlines)
	}
	if limit < 0 {
		limit = 0
	}
	return append([]string(nil), fallbackHeadlines[:limit]...)
}
