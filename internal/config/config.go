package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	Market struct {
		BaseURL      string  `yaml:"base_url"`
		KPILimit     int     `yaml:"kpi_limit"`
		ThresholdPct float64 `yaml:"threshold_pct"`
	} `yaml:"market"`
	Exchange struct {
		SpotURL       string `yaml:"spot_url"`
		FuturesURL    string `yaml:"futures_url"`
		BookSymbol    string `yaml:"book_symbol"`
		BookDepth     int    `yaml:"book_depth"`
		FundingSymbol string `yaml:"funding_symbol"`
	} `yaml:"exchange"`
	Chain struct {
		EtherscanAPIKey string `yaml:"etherscan_api_key"`
	} `yaml:"chain"`
	Refresh struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"refresh"`
	Cache struct {
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	News struct {
		Feeds []string `yaml:"feeds"`
		Limit int      `yaml:"limit"`
	} `yaml:"news"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("COINCAP_BASE_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("ETHERSCAN_API_KEY"); v != "" {
		cfg.Chain.EtherscanAPIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("REFRESH_SECONDS"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			cfg.Refresh.IntervalSeconds = sec
		}
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://api.coincap.io/v2"
	}
	if cfg.Market.KPILimit == 0 {
		cfg.Market.KPILimit = 100
	}
	if cfg.Market.ThresholdPct == 0 {
		cfg.Market.ThresholdPct = 5.0
	}
	if cfg.Exchange.SpotURL == "" {
		cfg.Exchange.SpotURL = "https://api.binance.com"
	}
	if cfg.Exchange.FuturesURL == "" {
		cfg.Exchange.FuturesURL = "https://fapi.binance.com"
	}
	if cfg.Exchange.BookSymbol == "" {
		cfg.Exchange.BookSymbol = "BTCUSDT"
	}
	if cfg.Exchange.BookDepth == 0 {
		cfg.Exchange.BookDepth = 50
	}
	if cfg.Exchange.FundingSymbol == "" {
		cfg.Exchange.FundingSymbol = "BTCUSDT"
	}
	if cfg.Refresh.IntervalSeconds == 0 {
		cfg.Refresh.IntervalSeconds = 60
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/cryptopulse.db"
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session_state.json"
	}
	if cfg.News.Limit == 0 {
		cfg.News.Limit = 6
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if c.Refresh.IntervalSeconds <= 0 {
		return fmt.Errorf("refresh.interval_seconds must be positive")
	}
	if c.Market.ThresholdPct <= 0 {
		return fmt.Errorf("market.threshold_pct must be positive")
	}
	return nil
}
