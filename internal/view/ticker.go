package view

import (
	"fmt"
	"strings"

	"CryptoPulse/internal/model"
)

// TickerLine builds the scrolling ticker text from top assets and
// headlines.
func TickerLine(assets []model.AssetSnapshot, headlines []string) string {
	items := make([]string, 0, len(assets)+len(headlines))
	for _, a := range assets {
		items = append(items, fmt.Sprintf("%s $%s %+.2f%%", a.Symbol, Price(a.PriceUSD), a.ChangePct24h))
	}
	for _, h := range headlines {
		items = append(items, "📰 "+h)
	}
	return strings.Join(items, " | ")
}
