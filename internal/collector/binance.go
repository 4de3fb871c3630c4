package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"CryptoPulse/internal/model"
)

// BinanceClient fetches order-book depth from the spot API and
// funding/open-interest from the futures API.
type BinanceClient struct {
	SpotURL    string
	FuturesURL string
	Client     *http.Client
}

// NewBinanceClient creates a client with optional proxy support.
func NewBinanceClient(spotURL, futuresURL, proxyURL string) *BinanceClient {
	if spotURL == "" {
		spotURL = "https://api.binance.com"
	}
	if futuresURL == "" {
		futuresURL = "https://fapi.binance.com"
	}
	return &BinanceClient{
		SpotURL:    spotURL,
		FuturesURL: futuresURL,
		Client:     newHTTPClient(generalTimeout, proxyURL),
	}
}

// Depth fetches spot order-book depth. Levels arrive as string pairs
// [price, qty]; unparseable levels are dropped.
func (b *BinanceClient) Depth(ctx context.Context, symbol string, limit int) (model.OrderBook, error) {
	params := url.Values{
		"symbol": {symbol},
		"limit":  {strconv.Itoa(limit)},
	}
	var resp struct {
		Bids [][2]string `json:"bids"`
		Asks [][2]string `json:"asks"`
	}
	if err := getJSON(ctx, b.Client, b.SpotURL+"/api/v3/depth", params, &resp); err != nil {
		return model.OrderBook{}, err
	}
	book := model.OrderBook{
		Bids: parseLevels(resp.Bids),
		Asks: parseLevels(resp.Asks),
	}
	if len(book.Bids) == 0 || len(book.Asks) == 0 {
		return model.OrderBook{}, fmt.Errorf("depth %s: empty book", symbol)
	}
	return book, nil
}

func parseLevels(raw [][2]string) []model.BookLevel {
	out := make([]model.BookLevel, 0, len(raw))
	for _, lvl := range raw {
		price := parseFloat(lvl[0])
		if price <= 0 {
			continue
		}
		out = append(out, model.BookLevel{Price: price, Qty: parseFloat(lvl[1])})
	}
	return out
}

// Funding fetches the premium index and open interest for a perpetual
// symbol and converts open interest to USD at the mark price.
func (b *BinanceClient) Funding(ctx context.Context, symbol string) (model.FundingInfo, error) {
	params := url.Values{"symbol": {symbol}}

	var premium struct {
		LastFundingRate string `json:"lastFundingRate"`
		MarkPrice       string `json:"markPrice"`
	}
	if err := getJSON(ctx, b.Client, b.FuturesURL+"/fapi/v1/premiumIndex", params, &premium); err != nil {
		return model.FundingInfo{}, err
	}

	var oi struct {
		OpenInterest string `json:"openInterest"`
	}
	if err := getJSON(ctx, b.Client, b.FuturesURL+"/fapi/v1/openInterest", params, &oi); err != nil {
		return model.FundingInfo{}, err
	}

	mark := parseFloat(premium.MarkPrice)
	return model.FundingInfo{
		RatePct:         parseFloat(premium.LastFundingRate) * 100.0,
		MarkPrice:       mark,
		OpenInterestUSD: parseFloat(oi.OpenInterest) * mark,
	}, nil
}
