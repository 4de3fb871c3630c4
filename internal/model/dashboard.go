package model

import "time"

// Result wraps a fetched value with its origin, so consumers and tests
// can tell real upstream data from a synthetic fallback.
type Result[T any] struct {
	Value T    `json:"value"`
	Live  bool `json:"live"`
}

// Live marks v as real upstream data.
func Live[T any](v T) Result[T] { return Result[T]{Value: v, Live: true} }

// Fallback marks v as synthetic fallback data.
func Fallback[T any](v T) Result[T] { return Result[T]{Value: v} }

// Mover is a top gainer or loser.
type Mover struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	ChangePct float64 `json:"change_pct"`
}

// MarketStats holds every scalar derived per refresh tick.
type MarketStats struct {
	BTCDominance        float64 `json:"btc_dominance"`
	ETHDominance        float64 `json:"eth_dominance"`
	AltDominance        float64 `json:"alt_dominance"`
	StablecoinDominance float64 `json:"stablecoin_dominance"`
	L2Dominance         float64 `json:"l2_dominance"`
	StablecoinCapUSD    float64 `json:"stablecoin_cap_usd"`
	Breadth             float64 `json:"breadth"`
	Advancers           int     `json:"advancers"`
	Decliners           int     `json:"decliners"`
	AverageChange       float64 `json:"average_change"`
	MedianChange        float64 `json:"median_change"`
	ThresholdUp         int     `json:"threshold_up"`
	ThresholdDown       int     `json:"threshold_down"`
	BTCVolatility24h    float64 `json:"btc_volatility_24h"`
	SpreadPct           float64 `json:"spread_pct"`
	Top10VolumeUSD      float64 `json:"top10_volume_usd"`
	TopGainer           *Mover  `json:"top_gainer,omitempty"`
	TopLoser            *Mover  `json:"top_loser,omitempty"`
	WatchlistAlerts     int     `json:"watchlist_alerts"`
}

// DashboardSnapshot is the full state assembled by one refresh tick.
type DashboardSnapshot struct {
	TakenAt       time.Time               `json:"taken_at"`
	Overview      Result[GlobalOverview]  `json:"overview"`
	Assets        Result[[]AssetSnapshot] `json:"assets"`
	Book          Result[OrderBook]       `json:"book"`
	Funding       Result[FundingInfo]     `json:"funding"`
	Gas           Result[GasPrices]       `json:"gas"`
	HashrateEHS   Result[float64]         `json:"hashrate_ehs"`
	Sentiment     Result[Sentiment]       `json:"sentiment"`
	Headlines     Result[[]string]        `json:"headlines"`
	ExchangeCount Result[int]             `json:"exchange_count"`
	TopExchange   Result[ExchangeInfo]    `json:"top_exchange"`
	Stats         MarketStats             `json:"stats"`
}
