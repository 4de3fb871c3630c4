package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/cache"
	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/model"
	"CryptoPulse/internal/notifier"
	"CryptoPulse/internal/recorder"
	"CryptoPulse/internal/scheduler"
	"CryptoPulse/internal/server"
	"CryptoPulse/internal/session"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("CryptoPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(lvl)
	}

	// Init cache: Redis when configured, in-process otherwise
	var store cache.Cache
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logrus.Warnf("redis unavailable, using memory cache: %v", err)
			store = cache.NewMemoryCache()
		} else {
			store = rc
		}
	} else {
		store = cache.NewMemoryCache()
	}
	defer store.Close()

	// Init upstream clients
	coincap := collector.NewCoinCapClient(cfg.Market.BaseURL, cfg.Proxy)
	binance := collector.NewBinanceClient(cfg.Exchange.SpotURL, cfg.Exchange.FuturesURL, cfg.Proxy)
	chain := collector.NewChainClient(cfg.Chain.EtherscanAPIKey, cfg.Proxy)
	sentiment := collector.NewSentimentClient(cfg.Proxy)
	news := collector.NewNewsClient(cfg.News.Feeds, cfg.Proxy)

	col := collector.NewCollector(coincap, binance, chain, sentiment, news, store, collector.Config{
		KPILimit:      cfg.Market.KPILimit,
		BookSymbol:    cfg.Exchange.BookSymbol,
		BookDepth:     cfg.Exchange.BookDepth,
		FundingSymbol: cfg.Exchange.FundingSymbol,
		ThresholdPct:  cfg.Market.ThresholdPct,
		NewsLimit:     cfg.News.Limit,
	})

	// Init session manager
	sm, err := session.NewManager(cfg.Session.StateFile)
	if err != nil {
		logrus.Fatalf("init session manager: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logrus.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier when configured
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		logrus.Info("telegram alerts enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init server and scheduler
	snapStore := server.NewStore()
	srv := server.New(cfg.Server.Listen, snapStore, col, sm)

	sched := scheduler.NewScheduler(ctx, col, sm, rec, tn)
	sched.OnTick = func(snap model.DashboardSnapshot) { snapStore.SetLatest(snap) }
	if err := sched.Register(cfg.Refresh.IntervalSeconds); err != nil {
		logrus.Fatalf("register refresh tick: %v", err)
	}
	sched.Start()

	// Warm up without delaying startup
	go sched.RunNow()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("http server: %v", err)
		}
	}()

	logrus.Info("CryptoPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logrus.Info("shutdown signal received, stopping...")
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("http shutdown: %v", err)
	}
	logrus.Info("CryptoPulse stopped")
}
