package model

// BookLevel is one price level of an order book side.
type BookLevel struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// OrderBook holds bid/ask depth, best levels first.
type OrderBook struct {
	Bids []BookLevel `json:"bids"`
	Asks []BookLevel `json:"asks"`
}

// FundingInfo holds perpetual-futures funding data for one symbol.
type FundingInfo struct {
	RatePct         float64 `json:"rate_pct"` // last funding rate, percent
	MarkPrice       float64 `json:"mark_price"`
	OpenInterestUSD float64 `json:"open_interest_usd"`
}

// GasPrices holds gas oracle tiers in gwei.
type GasPrices struct {
	Low  float64 `json:"low"`
	Avg  float64 `json:"avg"`
	Fast float64 `json:"fast"`
}

// Sentiment is a fear/greed style index reading.
type Sentiment struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
}
