package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CryptoPulse/internal/cache"
	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/series"
	"CryptoPulse/internal/session"
)

type stubMarket struct{}

func (stubMarket) GlobalOverview(context.Context) (model.GlobalOverview, error) {
	return model.GlobalOverview{TotalMarketCapUSD: 2e12, TotalVolumeUSD24h: 9e10}, nil
}

func (stubMarket) TopAssets(context.Context, int) ([]model.AssetSnapshot, error) {
	return stubAssets(), nil
}

func (stubMarket) AssetDetail(context.Context, string) (model.AssetSnapshot, error) {
	return stubAssets()[0], nil
}

func (stubMarket) History(context.Context, string, time.Duration) ([]series.RawSample, error) {
	return []series.RawSample{
		{TimeMs: 1700000000000, Price: "100"},
		{TimeMs: 1700000300000, Price: "110"},
		{TimeMs: 1700000600000, Price: "105"},
	}, nil
}

func (stubMarket) ExchangeCount(context.Context) (int, error) { return 42, nil }

func (stubMarket) TopExchange(context.Context) (model.ExchangeInfo, error) {
	return model.ExchangeInfo{Name: "TestEx", VolumeUSD: 1e9}, nil
}

type stubDerivs struct{}

func (stubDerivs) Depth(context.Context, string, int) (model.OrderBook, error) {
	return model.OrderBook{
		Bids: []model.BookLevel{{Price: 99, Qty: 1}},
		Asks: []model.BookLevel{{Price: 101, Qty: 1}},
	}, nil
}

func (stubDerivs) Funding(context.Context, string) (model.FundingInfo, error) {
	return model.FundingInfo{RatePct: 0.01, MarkPrice: 100, OpenInterestUSD: 5e8}, nil
}

type stubChain struct{}

func (stubChain) GasPrices(context.Context) (model.GasPrices, error) {
	return model.GasPrices{Low: 10, Avg: 20, Fast: 30}, nil
}

func (stubChain) HashrateEHS(context.Context) (float64, error) { return 600, nil }

type stubSentiment struct{}

func (stubSentiment) FearGreed(context.Context) (model.Sentiment, error) {
	return model.Sentiment{Value: 70, Classification: "Greed"}, nil
}

type stubNews struct{}

func (stubNews) Headlines(context.Context, int) ([]string, error) {
	return []string{"headline one"}, nil
}

func stubAssets() []model.AssetSnapshot {
	return []model.AssetSnapshot{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", PriceUSD: 60000, ChangePct24h: 1.5, MarketCapUSD: 1.2e12, VolumeUSD24h: 3e10},
		{ID: "tether", Symbol: "USDT", Name: "Tether", PriceUSD: 1, ChangePct24h: 0, MarketCapUSD: 1e11, VolumeUSD24h: 5e10},
	}
}

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	col := collector.NewCollector(stubMarket{}, stubDerivs{}, stubChain{},
		stubSentiment{}, stubNews{}, cache.NewMemoryCache(), collector.Config{})
	sm, err := session.NewManager(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	store := NewStore()
	return New(":0", store, col, sm), store
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.httpSrv.Handler.ServeHTTP(rr, req)
	return rr
}

func seedSnapshot(s *Server, store *Store) {
	store.SetLatest(s.collector.Snapshot(context.Background(), s.session.Snapshot()))
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/api/v1/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ready"] != false {
		t.Error("expected ready=false before first tick")
	}
}

func TestSnapshot_BeforeAndAfterTick(t *testing.T) {
	s, store := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/snapshot", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before first tick, got %d", rr.Code)
	}

	seedSnapshot(s, store)
	rr = doRequest(t, s, http.MethodGet, "/api/v1/snapshot", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 after tick, got %d", rr.Code)
	}
	var snap model.DashboardSnapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !snap.Overview.Live || snap.Overview.Value.TotalMarketCapUSD != 2e12 {
		t.Errorf("unexpected overview: %+v", snap.Overview)
	}
}

func TestAssets_CategoryFilter(t *testing.T) {
	s, store := newTestServer(t)
	seedSnapshot(s, store)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/assets?category=Stablecoins", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Assets []model.AssetSnapshot `json:"assets"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Assets) != 1 || body.Assets[0].Symbol != "USDT" {
		t.Errorf("expected only USDT, got %+v", body.Assets)
	}
}

func TestAssetDetail(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/assets/bitcoin", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Asset model.AssetSnapshot `json:"asset"`
		Live  bool                `json:"live"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Live || body.Asset.Symbol != "BTC" {
		t.Errorf("unexpected detail: %+v", body)
	}
}

func TestCompare(t *testing.T) {
	s, store := newTestServer(t)
	seedSnapshot(s, store)

	// Session default comparison is BTC, ETH, SOL. BTC resolves from the
	// snapshot; ETH and SOL from the static id table.
	rr := doRequest(t, s, http.MethodGet, "/api/v1/compare?window=24h", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Window string         `json:"window"`
		Series []compareEntry `json:"series"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Series) != 3 {
		t.Fatalf("expected 3 comparison lines, got %d", len(body.Series))
	}
	for _, e := range body.Series {
		if !e.Live {
			t.Errorf("%s: expected live series", e.Symbol)
		}
		if len(e.Sparkline) == 0 {
			t.Errorf("%s: empty sparkline", e.Symbol)
		}
		for _, v := range e.Sparkline {
			if v < 0 || v > 1 {
				t.Errorf("%s: sparkline value out of [0,1]: %f", e.Symbol, v)
			}
		}
	}
	if body.Series[0].Symbol != "BTC" || body.Series[0].ID != "bitcoin" {
		t.Errorf("snapshot symbol should resolve first: %+v", body.Series[0])
	}
}

func TestCompare_UnresolvableSymbolSkipped(t *testing.T) {
	s, _ := newTestServer(t)
	if err := s.session.SetComparison([]string{"BTC", "NOPE"}); err != nil {
		t.Fatal(err)
	}

	rr := doRequest(t, s, http.MethodGet, "/api/v1/compare", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Series []compareEntry `json:"series"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Series) != 1 || body.Series[0].Symbol != "BTC" {
		t.Errorf("unknown symbols should be skipped, got %+v", body.Series)
	}
}

func TestSparklineAndCandles(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/assets/bitcoin/sparkline?window=1h", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("sparkline: expected 200, got %d", rr.Code)
	}
	var spark struct {
		Sparkline []float64 `json:"sparkline"`
		Live      bool      `json:"live"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &spark); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !spark.Live || len(spark.Sparkline) != 3 {
		t.Errorf("unexpected sparkline: %+v", spark)
	}
	for _, v := range spark.Sparkline {
		if v < 0 || v > 1 {
			t.Errorf("sparkline value out of [0,1]: %f", v)
		}
	}

	rr = doRequest(t, s, http.MethodGet, "/api/v1/assets/bitcoin/candles?window=1h", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("candles: expected 200, got %d", rr.Code)
	}
	var candles struct {
		Width   string         `json:"width"`
		Candles []model.Candle `json:"candles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &candles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if candles.Width != "1m0s" {
		t.Errorf("expected 1m buckets for 1h window, got %q", candles.Width)
	}
	if len(candles.Candles) == 0 {
		t.Error("expected candles")
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, http.MethodPost, "/api/v1/session/watchlist", `{"symbol":"btc","threshold":7.5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("add watch: expected 200, got %d", rr.Code)
	}
	var st session.State
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Watchlist["BTC"] != 7.5 {
		t.Errorf("expected BTC=7.5, got %v", st.Watchlist)
	}

	rr = doRequest(t, s, http.MethodPost, "/api/v1/session/watchlist", `{"symbol":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("empty symbol: expected 400, got %d", rr.Code)
	}

	rr = doRequest(t, s, http.MethodDelete, "/api/v1/session/watchlist/BTC", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("remove watch: expected 200, got %d", rr.Code)
	}
	st = session.State{} // fresh value: Unmarshal merges into a non-nil map
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(st.Watchlist) != 0 {
		t.Errorf("expected empty watchlist, got %v", st.Watchlist)
	}
}

func TestUpdateSession(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, http.MethodPut, "/api/v1/session", `{"category":"DeFi","refresh_sec":30}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var st session.State
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Category != "DeFi" || st.RefreshSec != 30 {
		t.Errorf("update not applied: %+v", st)
	}

	rr = doRequest(t, s, http.MethodPut, "/api/v1/session", `{"refresh_sec":0}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("zero refresh: expected 400, got %d", rr.Code)
	}
}

func TestTickerAndGlobe(t *testing.T) {
	s, store := newTestServer(t)
	seedSnapshot(s, store)

	rr := doRequest(t, s, http.MethodGet, "/api/v1/ticker", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("ticker: expected 200, got %d", rr.Code)
	}
	var tick map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &tick); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(tick["ticker"], "BTC") {
		t.Errorf("ticker missing BTC: %q", tick["ticker"])
	}

	rr = doRequest(t, s, http.MethodGet, "/api/v1/globe", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("globe: expected 200, got %d", rr.Code)
	}
}
