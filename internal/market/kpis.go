package market

import (
	"strings"

	"CryptoPulse/internal/calculator"
	"CryptoPulse/internal/model"
)

// Stablecoins are the symbols counted toward stablecoin dominance.
var Stablecoins = map[string]bool{
	"USDT": true, "USDC": true, "DAI": true, "TUSD": true, "USDP": true,
}

// Layer2 are the symbols counted toward L2 dominance.
var Layer2 = map[string]bool{
	"ARB": true, "OP": true, "STRK": true, "METIS": true, "MANTA": true,
}

// Categories maps a filter name to its symbol set. "All" matches
// everything.
var Categories = map[string]map[string]bool{
	"All":         nil,
	"Layer1":      {"BTC": true, "ETH": true, "SOL": true, "ADA": true, "BNB": true, "AVAX": true, "ATOM": true, "NEAR": true},
	"DeFi":        {"UNI": true, "AAVE": true, "MKR": true, "CAKE": true, "CRV": true},
	"Stablecoins": {"USDT": true, "USDC": true, "DAI": true},
	"NFT":         {"APE": true, "SAND": true, "MANA": true},
	"Gaming":      {"GALA": true, "AXS": true},
}

// FilterCategory returns the assets whose symbol belongs to the named
// category. Unknown categories and "All" pass everything through.
func FilterCategory(assets []model.AssetSnapshot, category string) []model.AssetSnapshot {
	allowed := Categories[category]
	if allowed == nil {
		return assets
	}
	out := make([]model.AssetSnapshot, 0, len(assets))
	for _, a := range assets {
		if allowed[strings.ToUpper(a.Symbol)] {
			out = append(out, a)
		}
	}
	return out
}

// Inputs is everything one KPI evaluation reads. All fields are plain
// immutable snapshots taken at tick start.
type Inputs struct {
	Assets     []model.AssetSnapshot
	BTCHistory model.HistorySeries
	Book       model.OrderBook
	Watchlist  map[string]float64
	Threshold  float64
}

// Evaluate derives the full per-tick stat set. Pure: same inputs, same
// stats, no side effects.
func Evaluate(in Inputs) model.MarketStats {
	btc, eth, alt := calculator.DominanceBreakdown(in.Assets)
	adv, dec := calculator.AdvanceDecline(in.Assets)
	up, down := calculator.ThresholdCounts(in.Assets, in.Threshold)
	gainer, loser := calculator.TopMovers(in.Assets)

	top10 := in.Assets
	if len(top10) > 10 {
		top10 = top10[:10]
	}

	return model.MarketStats{
		BTCDominance:        btc,
		ETHDominance:        eth,
		AltDominance:        alt,
		StablecoinDominance: calculator.GroupDominance(in.Assets, Stablecoins),
		L2Dominance:         calculator.GroupDominance(in.Assets, Layer2),
		StablecoinCapUSD:    calculator.GroupCap(in.Assets, Stablecoins),
		Breadth:             calculator.Breadth(in.Assets),
		Advancers:           adv,
		Decliners:           dec,
		AverageChange:       calculator.AverageChange(in.Assets),
		MedianChange:        calculator.MedianChange(in.Assets),
		ThresholdUp:         up,
		ThresholdDown:       down,
		BTCVolatility24h:    calculator.Volatility(in.BTCHistory),
		SpreadPct:           calculator.SpreadPct(in.Book),
		Top10VolumeUSD:      calculator.VolumeSum(top10),
		TopGainer:           gainer,
		TopLoser:            loser,
		WatchlistAlerts:     calculator.WatchlistAlerts(in.Assets, in.Watchlist),
	}
}
