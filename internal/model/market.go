package model

// AssetSnapshot is one asset's market state at fetch time.
// Snapshots are ephemeral: replaced wholesale each refresh, never mutated.
type AssetSnapshot struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	PriceUSD     float64 `json:"price_usd"`
	ChangePct24h float64 `json:"change_pct_24h"`
	MarketCapUSD float64 `json:"market_cap_usd"`
	VolumeUSD24h float64 `json:"volume_usd_24h"`
}

// GlobalOverview holds market-wide aggregates.
type GlobalOverview struct {
	TotalMarketCapUSD float64 `json:"total_market_cap_usd"`
	TotalVolumeUSD24h float64 `json:"total_volume_usd_24h"`
}

// ExchangeInfo identifies an exchange and its 24h volume.
type ExchangeInfo struct {
	Name      string  `json:"name"`
	VolumeUSD float64 `json:"volume_usd"`
}
