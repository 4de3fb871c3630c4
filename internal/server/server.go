package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/market"
	"CryptoPulse/internal/series"
	"CryptoPulse/internal/session"
	"CryptoPulse/internal/view"
)

// Server exposes the dashboard over HTTP. Snapshots come from the
// store; per-asset charts hit the collector (which caches) directly.
type Server struct {
	httpSrv   *http.Server
	store     *Store
	collector *collector.Collector
	session   *session.Manager
	log       *logrus.Entry
}

// New builds the server with all routes registered.
func New(addr string, store *Store, col *collector.Collector, sm *session.Manager) *Server {
	s := &Server{
		store:     store,
		collector: col,
		session:   sm,
		log:       logrus.WithField("component", "server"),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/assets", s.handleAssets).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id}", s.handleAssetDetail).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id}/sparkline", s.handleSparkline).Methods(http.MethodGet)
	api.HandleFunc("/assets/{id}/candles", s.handleCandles).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.handleCompare).Methods(http.MethodGet)
	api.HandleFunc("/ticker", s.handleTicker).Methods(http.MethodGet)
	api.HandleFunc("/globe", s.handleGlobe).Methods(http.MethodGet)
	api.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/session", s.handleUpdateSession).Methods(http.MethodPut)
	api.HandleFunc("/session/watchlist", s.handleAddWatch).Methods(http.MethodPost)
	api.HandleFunc("/session/watchlist/{symbol}", s.handleRemoveWatch).Methods(http.MethodDelete)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.httpSrv.Addr).Info("http server listening")
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, ready := s.store.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  ready,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, snap.Stats)
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = s.session.Snapshot().Category
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"assets": market.FilterCategory(snap.Assets.Value, category),
		"live":   snap.Assets.Live,
	})
}

func (s *Server) handleAssetDetail(w http.ResponseWriter, r *http.Request) {
	res := s.collector.AssetDetail(r.Context(), mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, map[string]any{
		"asset": res.Value,
		"live":  res.Live,
	})
}

// comparisonIDs resolves common ticker symbols to asset ids when the
// symbol is missing from the latest snapshot.
var comparisonIDs = map[string]string{
	"BTC": "bitcoin", "ETH": "ethereum", "SOL": "solana",
	"BNB": "binance-coin", "XRP": "xrp", "ADA": "cardano",
	"DOGE": "dogecoin", "TON": "toncoin", "AVAX": "avalanche",
	"DOT": "polkadot",
}

type compareEntry struct {
	Symbol    string    `json:"symbol"`
	ID        string    `json:"id"`
	Sparkline []float64 `json:"sparkline"`
	Live      bool      `json:"live"`
}

// handleCompare serves one normalized history line per session
// comparison symbol. Symbols that resolve to no asset id are skipped.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r.URL.Query().Get("window"))
	st := s.session.Snapshot()

	idBySym := make(map[string]string)
	if snap, ok := s.store.Latest(); ok {
		for _, a := range snap.Assets.Value {
			idBySym[strings.ToUpper(a.Symbol)] = a.ID
		}
	}

	out := make([]compareEntry, 0, len(st.Comparison))
	for _, sym := range st.Comparison {
		id, ok := idBySym[sym]
		if !ok {
			id, ok = comparisonIDs[sym]
		}
		if !ok {
			continue
		}
		hist := s.collector.History(r.Context(), id, window)
		out = append(out, compareEntry{
			Symbol:    sym,
			ID:        id,
			Sparkline: series.Sparkline(hist.Value),
			Live:      hist.Live,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"window": window.String(),
		"series": out,
	})
}

// parseWindow maps the window query parameter onto a lookback duration.
func parseWindow(s string) time.Duration {
	switch s {
	case "1h":
		return time.Hour
	case "24h", "":
		return 24 * time.Hour
	case "7d":
		return 7 * 24 * time.Hour
	case "30d":
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	window := parseWindow(r.URL.Query().Get("window"))

	hist := s.collector.History(r.Context(), id, window)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"sparkline": series.Sparkline(hist.Value),
		"live":      hist.Live,
	})
}

func (s *Server) handleCandles(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	window := parseWindow(r.URL.Query().Get("window"))

	hist := s.collector.History(r.Context(), id, window)
	width := series.BucketWidth(window)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"width":   width.String(),
		"candles": series.Resample(hist.Value, width),
		"live":    hist.Live,
	})
}

func (s *Server) handleTicker(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	assets := snap.Assets.Value
	if len(assets) > 10 {
		assets = assets[:10]
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"ticker": view.TickerLine(assets, snap.Headlines.Value),
	})
}

func (s *Server) handleGlobe(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	st := s.session.Snapshot()
	writeJSON(w, http.StatusOK, view.Globe(snap.Assets.Value, st.Globe))
}

func (s *Server) handleNews(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"headlines": snap.Headlines.Value,
		"live":      snap.Headlines.Live,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

type watchRequest struct {
	Symbol    string  `json:"symbol"`
	Threshold float64 `json:"threshold"`
}

func (s *Server) handleAddWatch(w http.ResponseWriter, r *http.Request) {
	var req watchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.session.AddWatch(req.Symbol, req.Threshold); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleRemoveWatch(w http.ResponseWriter, r *http.Request) {
	if err := s.session.RemoveWatch(mux.Vars(r)["symbol"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

type sessionUpdate struct {
	Category   *string              `json:"category,omitempty"`
	Comparison []string             `json:"comparison,omitempty"`
	Globe      *session.GlobeParams `json:"globe,omitempty"`
	RefreshSec *int                 `json:"refresh_sec,omitempty"`
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Category != nil {
		if err := s.session.SetCategory(*req.Category); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if req.Comparison != nil {
		if err := s.session.SetComparison(req.Comparison); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if req.Globe != nil {
		if err := s.session.SetGlobe(*req.Globe); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if req.RefreshSec != nil {
		if err := s.session.SetRefresh(*req.RefreshSec); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}
