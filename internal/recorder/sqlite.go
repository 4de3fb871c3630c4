package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists tick history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers (Grafana etc.) don't block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: logrus.WithField("component", "recorder")}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tick_stats (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			total_mcap       REAL,
			total_vol24      REAL,
			btc_dominance    REAL,
			eth_dominance    REAL,
			alt_dominance    REAL,
			stable_dominance REAL,
			l2_dominance     REAL,
			breadth          REAL,
			advancers        INTEGER,
			decliners        INTEGER,
			avg_change       REAL,
			median_change    REAL,
			threshold_up     INTEGER,
			threshold_down   INTEGER,
			btc_volatility   REAL,
			spread_pct       REAL,
			top10_volume     REAL,
			fear_greed       INTEGER,
			funding_pct      REAL,
			open_interest    REAL,
			gas_avg          REAL,
			hashrate_ehs     REAL,
			alerts           INTEGER,
			live_parts       INTEGER,
			total_parts      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tick_ts ON tick_stats(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			change_pct REAL,
			threshold  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_ts ON alert_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTick(rec *TickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := rec.Stats
	_, err := r.db.Exec(`INSERT INTO tick_stats
		(timestamp, total_mcap, total_vol24,
		 btc_dominance, eth_dominance, alt_dominance, stable_dominance, l2_dominance,
		 breadth, advancers, decliners, avg_change, median_change,
		 threshold_up, threshold_down, btc_volatility, spread_pct, top10_volume,
		 fear_greed, funding_pct, open_interest, gas_avg, hashrate_ehs,
		 alerts, live_parts, total_parts)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Overview.TotalMarketCapUSD, rec.Overview.TotalVolumeUSD24h,
		st.BTCDominance, st.ETHDominance, st.AltDominance, st.StablecoinDominance, st.L2Dominance,
		st.Breadth, st.Advancers, st.Decliners, st.AverageChange, st.MedianChange,
		st.ThresholdUp, st.ThresholdDown, st.BTCVolatility24h, st.SpreadPct, st.Top10VolumeUSD,
		rec.FearGreed.Value, rec.Funding.RatePct, rec.Funding.OpenInterestUSD,
		rec.GasAvg, rec.HashrateEHS,
		st.WatchlistAlerts, rec.LiveParts, rec.TotalParts,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_events
		(timestamp, symbol, change_pct, threshold)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.ChangePct, evt.Threshold,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
