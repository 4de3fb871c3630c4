package scheduler

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/notifier"
	"CryptoPulse/internal/recorder"
	"CryptoPulse/internal/session"
)

// Scheduler drives the periodic refresh tick.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Session   *session.Manager
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier // optional
	OnTick    func(model.DashboardSnapshot)
	Ctx       context.Context

	log *logrus.Entry

	// lastAlerted dedups watchlist notifications: a symbol alerts once
	// per crossing, re-arming when it drops back under its threshold.
	lastAlerted map[string]bool

	entryID     cron.EntryID
	intervalSec int
}

// NewScheduler creates a scheduler wired to the collector and session.
func NewScheduler(ctx context.Context, col *collector.Collector, sm *session.Manager, rec recorder.Recorder, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(),
		Collector:   col,
		Session:     sm,
		Recorder:    rec,
		Notifier:    tn,
		Ctx:         ctx,
		log:         logrus.WithField("component", "scheduler"),
		lastAlerted: make(map[string]bool),
	}
}

// Register schedules the refresh tick at the given interval.
func (s *Scheduler) Register(intervalSec int) error {
	spec := fmt.Sprintf("@every %ds", intervalSec)
	id, err := s.Cron.AddFunc(spec, s.tick)
	if err != nil {
		return fmt.Errorf("register refresh tick: %w", err)
	}
	s.entryID = id
	s.intervalSec = intervalSec
	return nil
}

// maybeReschedule moves the tick entry to the session's refresh
// interval after it changed through the API. Only active once Register
// has installed an entry.
func (s *Scheduler) maybeReschedule(sec int) {
	if sec <= 0 || s.intervalSec == 0 || sec == s.intervalSec {
		return
	}
	id, err := s.Cron.AddFunc(fmt.Sprintf("@every %ds", sec), s.tick)
	if err != nil {
		s.log.WithError(err).Error("reschedule refresh tick")
		return
	}
	s.Cron.Remove(s.entryID)
	s.entryID = id
	s.intervalSec = sec
	s.log.WithField("interval_sec", sec).Info("refresh interval updated")
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	ctx := s.Cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// RunNow executes a tick immediately (startup warm-up, manual refresh).
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	st := s.Session.Snapshot()
	s.maybeReschedule(st.RefreshSec)
	snap := s.Collector.Snapshot(s.Ctx, st)

	live, total := liveParts(snap)
	s.log.WithFields(logrus.Fields{
		"live_parts":  live,
		"total_parts": total,
		"alerts":      snap.Stats.WatchlistAlerts,
	}).Info("refresh tick complete")

	if s.OnTick != nil {
		s.OnTick(snap)
	}

	if err := s.Recorder.RecordTick(&recorder.TickRecord{
		Overview:    snap.Overview.Value,
		Stats:       snap.Stats,
		FearGreed:   snap.Sentiment.Value,
		Funding:     snap.Funding.Value,
		GasAvg:      snap.Gas.Value.Avg,
		HashrateEHS: snap.HashrateEHS.Value,
		LiveParts:   live,
		TotalParts:  total,
	}); err != nil {
		s.log.WithError(err).Error("record tick")
	}

	s.checkWatchlist(st, snap)
}

// checkWatchlist fires one alert per symbol per threshold crossing.
func (s *Scheduler) checkWatchlist(st session.State, snap model.DashboardSnapshot) {
	if len(st.Watchlist) == 0 {
		return
	}

	bySym := make(map[string]model.AssetSnapshot, len(snap.Assets.Value))
	for _, a := range snap.Assets.Value {
		bySym[strings.ToUpper(a.Symbol)] = a
	}

	for sym, threshold := range st.Watchlist {
		a, ok := bySym[sym]
		if !ok {
			continue
		}
		crossed := math.Abs(a.ChangePct24h) >= threshold
		if !crossed {
			delete(s.lastAlerted, sym)
			continue
		}
		if s.lastAlerted[sym] {
			continue
		}
		s.lastAlerted[sym] = true

		evt := &recorder.AlertEvent{Symbol: sym, ChangePct: a.ChangePct24h, Threshold: threshold}
		s.log.WithFields(logrus.Fields{
			"symbol":     sym,
			"change_pct": a.ChangePct24h,
			"threshold":  threshold,
		}).Warn("watchlist alert")

		if err := s.Recorder.RecordAlert(evt); err != nil {
			s.log.WithError(err).Error("record alert")
		}
		if s.Notifier != nil {
			if err := s.Notifier.SendWithRetry(s.Ctx, notifier.FormatAlert(evt), 3); err != nil {
				s.log.WithError(err).Error("send alert")
			}
		}
	}
}

func liveParts(snap model.DashboardSnapshot) (live, total int) {
	parts := []bool{
		snap.Overview.Live,
		snap.Assets.Live,
		snap.Book.Live,
		snap.Funding.Live,
		snap.Gas.Live,
		snap.HashrateEHS.Live,
		snap.Sentiment.Live,
		snap.Headlines.Live,
		snap.ExchangeCount.Live,
		snap.TopExchange.Live,
	}
	for _, p := range parts {
		if p {
			live++
		}
	}
	return live, len(parts)
}
