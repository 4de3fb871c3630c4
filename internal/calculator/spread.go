package calculator

import "CryptoPulse/internal/model"

// SpreadPct returns the best bid/ask spread as a percentage of the mid
// price. Returns 0 when either side is empty or the mid is not positive.
func SpreadPct(book model.OrderBook) float64 {
	if len(book.Bids) == 0 || len(book.Asks) == 0 {
		return 0
	}
	bid := book.Bids[0].Price
	ask := book.Asks[0].Price
	mid := (bid + ask) / 2
	if mid <= 0 {
		return 0
	}
	return (ask - bid) / mid * 100.0
}
