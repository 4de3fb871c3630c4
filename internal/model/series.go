package model

import "time"

// PricePoint is a single cleaned (timestamp, price) sample.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// HistorySeries is a cleaned price history: timestamps strictly
// increasing, prices finite and non-negative. Treated as immutable
// once produced.
type HistorySeries []PricePoint

// Candle is an OHLC summary of one fixed-width time bucket.
type Candle struct {
	BucketStart time.Time `json:"bucket_start"`
	Open        float64   `json:"open"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Close       float64   `json:"close"`
}
