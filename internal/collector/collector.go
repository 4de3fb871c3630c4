package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/cache"
	"CryptoPulse/internal/market"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/series"
	"CryptoPulse/internal/session"
)

// MarketSource provides asset-level and market-wide data.
type MarketSource interface {
	GlobalOverview(ctx context.Context) (model.GlobalOverview, error)
	TopAssets(ctx context.Context, limit int) ([]model.AssetSnapshot, error)
	AssetDetail(ctx context.Context, id string) (model.AssetSnapshot, error)
	History(ctx context.Context, id string, lookback time.Duration) ([]series.RawSample, error)
	ExchangeCount(ctx context.Context) (int, error)
	TopExchange(ctx context.Context) (model.ExchangeInfo, error)
}

// DerivativesSource provides order-book and futures data.
type DerivativesSource interface {
	Depth(ctx context.Context, symbol string, limit int) (model.OrderBook, error)
	Funding(ctx context.Context, symbol string) (model.FundingInfo, error)
}

// ChainSource provides on-chain metrics.
type ChainSource interface {
	GasPrices(ctx context.Context) (model.GasPrices, error)
	HashrateEHS(ctx context.Context) (float64, error)
}

// SentimentSource provides the fear/greed index.
type SentimentSource interface {
	FearGreed(ctx context.Context) (model.Sentiment, error)
}

// NewsSource provides headlines.
type NewsSource interface {
	Headlines(ctx context.Context, limit int) ([]string, error)
}

// Per-operation cache TTLs.
const (
	overviewTTL  = 60 * time.Second
	assetsTTL    = 60 * time.Second
	historyTTL   = 120 * time.Second
	bookTTL      = 30 * time.Second
	fundingTTL   = 60 * time.Second
	gasTTL       = 60 * time.Second
	hashrateTTL  = 300 * time.Second
	sentimentTTL = 600 * time.Second
	exchangesTTL = 180 * time.Second
	newsTTL      = 120 * time.Second
)

// Config tunes what one snapshot covers.
type Config struct {
	KPILimit        int     // assets fetched for stat computation
	BookSymbol      string  // spot order-book symbol
	BookDepth       int
	FundingSymbol   string  // perpetual futures symbol
	ThresholdPct    float64 // threshold-count cutoff
	NewsLimit       int
	VolatilityAsset string // asset id whose 24h history feeds the volatility proxy
}

// Collector assembles dashboard snapshots from the upstream sources.
// Every read goes through the TTL cache; any failure degrades to
// fallback data rather than aborting the tick.
type Collector struct {
	Market    MarketSource
	Derivs    DerivativesSource
	Chain     ChainSource
	Sentiment SentimentSource
	News      NewsSource
	Cache     cache.Cache
	Cfg       Config

	log *logrus.Entry
}

// NewCollector wires a collector from its sources.
func NewCollector(m MarketSource, d DerivativesSource, ch ChainSource, s SentimentSource, n NewsSource, c cache.Cache, cfg Config) *Collector {
	if cfg.KPILimit <= 0 {
		cfg.KPILimit = 100
	}
	if cfg.BookSymbol == "" {
		cfg.BookSymbol = "BTCUSDT"
	}
	if cfg.BookDepth <= 0 {
		cfg.BookDepth = 50
	}
	if cfg.FundingSymbol == "" {
		cfg.FundingSymbol = "BTCUSDT"
	}
	if cfg.ThresholdPct <= 0 {
		cfg.ThresholdPct = 5.0
	}
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = 6
	}
	if cfg.VolatilityAsset == "" {
		cfg.VolatilityAsset = "bitcoin"
	}
	return &Collector{
		Market:    m,
		Derivs:    d,
		Chain:     ch,
		Sentiment: s,
		News:      n,
		Cache:     c,
		Cfg:       cfg,
		log:       logrus.WithField("component", "collector"),
	}
}

// lookup memoizes fetch under key and degrades to fallback() on any
// error. Only live values are cached, so the next access retries.
func lookup[T any](c *Collector, ctx context.Context, key string, ttl time.Duration, fetch func() (T, error), fallback func() T) model.Result[T] {
	v, err := cache.Lookup(ctx, c.Cache, key, ttl, fetch)
	if err != nil {
		c.log.WithError(err).WithField("op", key).Warn("upstream unavailable, using fallback")
		return model.Fallback(fallback())
	}
	return model.Live(v)
}

// Overview returns market-wide totals.
func (c *Collector) Overview(ctx context.Context) model.Result[model.GlobalOverview] {
	return lookup(c, ctx, "overview", overviewTTL,
		func() (model.GlobalOverview, error) { return c.Market.GlobalOverview(ctx) },
		FallbackOverview)
}

// Assets returns the top assets by market cap.
func (c *Collector) Assets(ctx context.Context, limit int) model.Result[[]model.AssetSnapshot] {
	key := fmt.Sprintf("assets:%d", limit)
	return lookup(c, ctx, key, assetsTTL,
		func() ([]model.AssetSnapshot, error) { return c.Market.TopAssets(ctx, limit) },
		FallbackAssets)
}

// AssetDetail returns one asset by its id, for per-asset detail cards.
func (c *Collector) AssetDetail(ctx context.Context, id string) model.Result[model.AssetSnapshot] {
	key := "detail:" + id
	return lookup(c, ctx, key, assetsTTL,
		func() (model.AssetSnapshot, error) { return c.Market.AssetDetail(ctx, id) },
		func() model.AssetSnapshot { return FallbackAssetDetail(id) })
}

// History returns the cleaned price history for an asset over the
// lookback window. An empty cleaned series counts as unavailable and
// yields a synthetic random walk of matching shape.
func (c *Collector) History(ctx context.Context, id string, lookback time.Duration) model.Result[model.HistorySeries] {
	key := fmt.Sprintf("history:%s:%s", id, lookback)
	step := series.BucketWidth(lookback)
	return lookup(c, ctx, key, historyTTL,
		func() (model.HistorySeries, error) {
			raw, err := c.Market.History(ctx, id, lookback)
			if err != nil {
				return nil, err
			}
			s := series.Normalize(raw)
			if len(s) == 0 {
				return nil, fmt.Errorf("history %s: empty after cleaning", id)
			}
			return s, nil
		},
		func() model.HistorySeries {
			return FallbackSeries(int(lookback/step), step, time.Now().UTC())
		})
}

// Book returns the configured symbol's order book. The fallback is an
// empty book; aggregations define neutral results over it.
func (c *Collector) Book(ctx context.Context) model.Result[model.OrderBook] {
	key := fmt.Sprintf("book:%s:%d", c.Cfg.BookSymbol, c.Cfg.BookDepth)
	return lookup(c, ctx, key, bookTTL,
		func() (model.OrderBook, error) { return c.Derivs.Depth(ctx, c.Cfg.BookSymbol, c.Cfg.BookDepth) },
		func() model.OrderBook { return model.OrderBook{} })
}

// Funding returns funding/open-interest for the configured symbol.
func (c *Collector) Funding(ctx context.Context) model.Result[model.FundingInfo] {
	key := "funding:" + c.Cfg.FundingSymbol
	return lookup(c, ctx, key, fundingTTL,
		func() (model.FundingInfo, error) { return c.Derivs.Funding(ctx, c.Cfg.FundingSymbol) },
		func() model.FundingInfo { return model.FundingInfo{} })
}

// Gas returns gas oracle tiers.
func (c *Collector) Gas(ctx context.Context) model.Result[model.GasPrices] {
	return lookup(c, ctx, "gas", gasTTL,
		func() (model.GasPrices, error) { return c.Chain.GasPrices(ctx) },
		FallbackGas)
}

// Hashrate returns the network hashrate in EH/s.
func (c *Collector) Hashrate(ctx context.Context) model.Result[float64] {
	return lookup(c, ctx, "hashrate", hashrateTTL,
		func() (float64, error) { return c.Chain.HashrateEHS(ctx) },
		FallbackHashrate)
}

// FearGreed returns the sentiment index.
func (c *Collector) FearGreed(ctx context.Context) model.Result[model.Sentiment] {
	return lookup(c, ctx, "sentiment", sentimentTTL,
		func() (model.Sentiment, error) { return c.Sentiment.FearGreed(ctx) },
		FallbackSentiment)
}

// Headlines returns news titles.
func (c *Collector) Headlines(ctx context.Context) model.Result[[]string] {
	key := fmt.Sprintf("news:%d", c.Cfg.NewsLimit)
	return lookup(c, ctx, key, newsTTL,
		func() ([]string, error) { return c.News.Headlines(ctx, c.Cfg.NewsLimit) },
		func() []string { return FallbackHeadlines(c.Cfg.NewsLimit) })
}

// ExchangeCount returns the number of tracked exchanges. The fallback
// is 0, rendered as unavailable.
func (c *Collector) ExchangeCount(ctx context.Context) model.Result[int] {
	return lookup(c, ctx, "exchanges:count", exchangesTTL,
		func() (int, error) { return c.Market.ExchangeCount(ctx) },
		func() int { return 0 })
}

// TopExchange returns the largest exchange by 24h volume.
func (c *Collector) TopExchange(ctx context.Context) model.Result[model.ExchangeInfo] {
	return lookup(c, ctx, "exchanges:top", exchangesTTL,
		func() (model.ExchangeInfo, error) { return c.Market.TopExchange(ctx) },
		func() model.ExchangeInfo { return model.ExchangeInfo{} })
}

// Snapshot fetches everything one refresh tick needs, sequentially,
// and derives the stat set. Failed sections carry fallback data; the
// tick itself never fails.
func (c *Collector) Snapshot(ctx context.Context, st session.State) model.DashboardSnapshot {
	snap := model.DashboardSnapshot{TakenAt: time.Now().UTC()}

	snap.Overview = c.Overview(ctx)
	snap.Assets = c.Assets(ctx, c.Cfg.KPILimit)
	snap.Book = c.Book(ctx)
	snap.Funding = c.Funding(ctx)
	snap.Gas = c.Gas(ctx)
	snap.HashrateEHS = c.Hashrate(ctx)
	snap.Sentiment = c.FearGreed(ctx)
	snap.Headlines = c.Headlines(ctx)
	snap.ExchangeCount = c.ExchangeCount(ctx)
	snap.TopExchange = c.TopExchange(ctx)

	btcHistory := c.History(ctx, c.Cfg.VolatilityAsset, 24*time.Hour)

	snap.Stats = market.Evaluate(market.Inputs{
		Assets:     snap.Assets.Value,
		BTCHistory: btcHistory.Value,
		Book:       snap.Book.Value,
		Watchlist:  st.Watchlist,
		Threshold:  c.Cfg.ThresholdPct,
	})
	return snap
}
