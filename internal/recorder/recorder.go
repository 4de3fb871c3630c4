package recorder

import "CryptoPulse/internal/model"

// TickRecord is one refresh tick's derived state, kept for later
// analysis. The recorder is an append-only log, never read back by the
// dashboard itself.
type TickRecord struct {
	Overview    model.GlobalOverview
	Stats       model.MarketStats
	FearGreed   model.Sentiment
	Funding     model.FundingInfo
	GasAvg      float64
	HashrateEHS float64
	LiveParts   int // sections served from real upstream data
	TotalParts  int
}

// AlertEvent records a watchlist threshold crossing.
type AlertEvent struct {
	Symbol    string
	ChangePct float64
	Threshold float64
}

// Recorder persists tick history for analysis.
type Recorder interface {
	RecordTick(rec *TickRecord) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
