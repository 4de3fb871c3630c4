package calculator

import (
	"strings"

	"CryptoPulse/internal/model"
)

// Dominance returns symbol's share of the snapshot's total market cap
// as a percentage. Returns 0 when the symbol is absent or the total is 0.
func Dominance(assets []model.AssetSnapshot, symbol string) float64 {
	symbol = strings.ToUpper(symbol)
	var total, own float64
	for _, a := range assets {
		total += a.MarketCapUSD
		if strings.ToUpper(a.Symbol) == symbol {
			own += a.MarketCapUSD
		}
	}
	if total <= 0 {
		return 0
	}
	return own / total * 100.0
}

// DominanceBreakdown splits total market cap into BTC, ETH and the
// remainder. Alt dominance is clamped at zero.
func DominanceBreakdown(assets []model.AssetSnapshot) (btc, eth, alt float64) {
	btc = Dominance(assets, "BTC")
	eth = Dominance(assets, "ETH")
	alt = 100.0 - btc - eth
	if len(assets) == 0 {
		alt = 0
	}
	if alt < 0 {
		alt = 0
	}
	return btc, eth, alt
}

// GroupDominance returns the combined market-cap share of a symbol set,
// e.g. stablecoins or L2 tokens.
func GroupDominance(assets []model.AssetSnapshot, symbols map[string]bool) float64 {
	var total, group float64
	for _, a := range assets {
		total += a.MarketCapUSD
		if symbols[strings.ToUpper(a.Symbol)] {
			group += a.MarketCapUSD
		}
	}
	if total <= 0 {
		return 0
	}
	return group / total * 100.0
}

// GroupCap sums the market cap of a symbol set.
func GroupCap(assets []model.AssetSnapshot, symbols map[string]bool) float64 {
	var sum float64
	for _, a := range assets {
		if symbols[strings.ToUpper(a.Symbol)] {
			sum += a.MarketCapUSD
		}
	}
	return sum
}
