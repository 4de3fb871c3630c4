package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoPulse/internal/model"
	"CryptoPulse/internal/series"
)

// CoinCapClient fetches market data from the CoinCap REST API.
type CoinCapClient struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinCapClient creates a client with optional proxy support.
func NewCoinCapClient(baseURL, proxyURL string) *CoinCapClient {
	if baseURL == "" {
		baseURL = "https://api.coincap.io/v2"
	}
	return &CoinCapClient{
		BaseURL: baseURL,
		Client:  newHTTPClient(generalTimeout, proxyURL),
	}
}

// ccAsset is the wire shape of a CoinCap asset record. Numbers come as
// decimal strings.
type ccAsset struct {
	ID               string `json:"id"`
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	PriceUsd         string `json:"priceUsd"`
	ChangePercent24h string `json:"changePercent24Hr"`
	MarketCapUsd     string `json:"marketCapUsd"`
	VolumeUsd24h     string `json:"volumeUsd24Hr"`
}

func (a ccAsset) toSnapshot() model.AssetSnapshot {
	return model.AssetSnapshot{
		ID:           a.ID,
		Symbol:       a.Symbol,
		Name:         a.Name,
		PriceUSD:     parseFloat(a.PriceUsd),
		ChangePct24h: parseFloat(a.ChangePercent24h),
		MarketCapUSD: parseFloat(a.MarketCapUsd),
		VolumeUSD24h: parseFloat(a.VolumeUsd24h),
	}
}

// GlobalOverview fetches market-wide totals.
func (c *CoinCapClient) GlobalOverview(ctx context.Context) (model.GlobalOverview, error) {
	var resp struct {
		Data struct {
			TotalMarketCapUsd string `json:"totalMarketCapUsd"`
			TotalVolumeUsd24h string `json:"totalVolumeUsd24Hr"`
		} `json:"data"`
	}
	if err := getJSON(ctx, c.Client, c.BaseURL+"/global", nil, &resp); err != nil {
		return model.GlobalOverview{}, err
	}
	ov := model.GlobalOverview{
		TotalMarketCapUSD: parseFloat(resp.Data.TotalMarketCapUsd),
		TotalVolumeUSD24h: parseFloat(resp.Data.TotalVolumeUsd24h),
	}
	if ov.TotalMarketCapUSD <= 0 {
		return model.GlobalOverview{}, fmt.Errorf("global overview: no data")
	}
	return ov, nil
}

// TopAssets fetches the top assets by market cap.
func (c *CoinCapClient) TopAssets(ctx context.Context, limit int) ([]model.AssetSnapshot, error) {
	var resp struct {
		Data []ccAsset `json:"data"`
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := getJSON(ctx, c.Client, c.BaseURL+"/assets", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("assets: no data")
	}
	out := make([]model.AssetSnapshot, 0, len(resp.Data))
	for _, a := range resp.Data {
		out = append(out, a.toSnapshot())
	}
	return out, nil
}

// AssetDetail fetches one asset by its CoinCap id.
func (c *CoinCapClient) AssetDetail(ctx context.Context, id string) (model.AssetSnapshot, error) {
	var resp struct {
		Data ccAsset `json:"data"`
	}
	if err := getJSON(ctx, c.Client, c.BaseURL+"/assets/"+url.PathEscape(id), nil, &resp); err != nil {
		return model.AssetSnapshot{}, err
	}
	if resp.Data.ID == "" {
		return model.AssetSnapshot{}, fmt.Errorf("asset %s: no data", id)
	}
	return resp.Data.toSnapshot(), nil
}

// historyInterval maps a lookback window onto CoinCap's interval names.
func historyInterval(lookback time.Duration) string {
	switch {
	case lookback <= 6*time.Hour:
		return "m1"
	case lookback <= 24*time.Hour:
		return "m5"
	case lookback <= 7*24*time.Hour:
		return "h1"
	default:
		return "d1"
	}
}

// History fetches raw price samples for the lookback window ending now.
// The rows are untrusted; callers normalize them.
func (c *CoinCapClient) History(ctx context.Context, id string, lookback time.Duration) ([]series.RawSample, error) {
	now := time.Now().UTC()
	params := url.Values{
		"interval": {historyInterval(lookback)},
		"start":    {strconv.FormatInt(now.Add(-lookback).UnixMilli(), 10)},
		"end":      {strconv.FormatInt(now.UnixMilli(), 10)},
	}
	var resp struct {
		Data []series.RawSample `json:"data"`
	}
	u := c.BaseURL + "/assets/" + url.PathEscape(id) + "/history"
	if err := getJSON(ctx, c.Client, u, params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ccExchange may carry either volumeUsd or volumeUsd24Hr.
type ccExchange struct {
	Name          string `json:"name"`
	VolumeUsd     string `json:"volumeUsd"`
	VolumeUsd24Hr string `json:"volumeUsd24Hr"`
}

func (e ccExchange) volume() float64 {
	if v := parseFloat(e.VolumeUsd24Hr); v > 0 {
		return v
	}
	return parseFloat(e.VolumeUsd)
}

// ExchangeCount returns the number of exchanges CoinCap tracks.
func (c *CoinCapClient) ExchangeCount(ctx context.Context) (int, error) {
	exchanges, err := c.exchanges(ctx, 2000)
	if err != nil {
		return 0, err
	}
	return len(exchanges), nil
}

// TopExchange returns the exchange with the largest 24h volume.
func (c *CoinCapClient) TopExchange(ctx context.Context) (model.ExchangeInfo, error) {
	exchanges, err := c.exchanges(ctx, 200)
	if err != nil {
		return model.ExchangeInfo{}, err
	}
	if len(exchanges) == 0 {
		return model.ExchangeInfo{}, fmt.Errorf("exchanges: no data")
	}
	top := exchanges[0]
	for _, e := range exchanges[1:] {
		if e.volume() > top.volume() {
			top = e
		}
	}
	return model.ExchangeInfo{Name: top.Name, VolumeUSD: top.volume()}, nil
}

func (c *CoinCapClient) exchanges(ctx context.Context, limit int) ([]ccExchange, error) {
	var resp struct {
		Data []ccExchange `json:"data"`
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := getJSON(ctx, c.Client, c.BaseURL+"/exchanges", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
