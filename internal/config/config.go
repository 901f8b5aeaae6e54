package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FundConfig identifies one 13F filer to track.
type FundConfig struct {
	Slug string `yaml:"slug"`
	CIK  string `yaml:"cik"`
	Name string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	RulesFile string `yaml:"rules_file"`
	// SourceURL points the loader at another instance's published data
	// directory over HTTP instead of the local DataDir.
	SourceURL string `yaml:"source_url"`
	Sources   struct {
		HouseURL  string `yaml:"house_url"`
		SenateURL string `yaml:"senate_url"`
	} `yaml:"sources"`
	SEC struct {
		UserAgent string `yaml:"user_agent"`
	} `yaml:"sec"`
	Funds    []FundConfig `yaml:"funds"`
	Schedule struct {
		FilingsCron    string `yaml:"filings_cron"`
		MarketsCron    string `yaml:"markets_cron"`
		EvaluationCron string `yaml:"evaluation_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SEC_EDGAR_USER_AGENT"); v != "" {
		cfg.SEC.UserAgent = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DATA_SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_FILINGS"); v != "" {
		cfg.Schedule.FilingsCron = v
	}
	if v := os.Getenv("CRON_MARKETS"); v != "" {
		cfg.Schedule.MarketsCron = v
	}
	if v := os.Getenv("CRON_EVALUATION"); v != "" {
		cfg.Schedule.EvaluationCron = v
	}

	// Defaults
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.RulesFile == "" {
		cfg.RulesFile = "configs/alert_rules.json"
	}
	if cfg.Sources.HouseURL == "" {
		cfg.Sources.HouseURL = "https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json"
	}
	if cfg.Sources.SenateURL == "" {
		cfg.Sources.SenateURL = "https://senate-stock-watcher-data.s3-us-west-2.amazonaws.com/aggregate/all_transactions.json"
	}
	if cfg.Schedule.FilingsCron == "" {
		cfg.Schedule.FilingsCron = "0 0 6 * * *"
	}
	if cfg.Schedule.MarketsCron == "" {
		cfg.Schedule.MarketsCron = "0 30 * * * 1-5"
	}
	if cfg.Schedule.EvaluationCron == "" {
		cfg.Schedule.EvaluationCron = "0 0 7,13,19 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_radar.db"
	}
	if len(cfg.Funds) == 0 {
		cfg.Funds = []FundConfig{
			{Slug: "scion", CIK: "1649339", Name: "Scion Asset Management"},
			{Slug: "berkshire", CIK: "1067983", Name: "Berkshire Hathaway"},
			{Slug: "pershing", CIK: "1336528", Name: "Pershing Square Capital"},
			{Slug: "bridgewater", CIK: "1350694", Name: "Bridgewater Associates"},
		}
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.RulesFile == "" {
		return fmt.Errorf("rules_file is required")
	}
	if c.SEC.UserAgent == "" {
		return fmt.Errorf("sec.user_agent is required (SEC EDGAR rejects anonymous clients)")
	}
	for _, f := range c.Funds {
		if f.Slug == "" || f.CIK == "" {
			return fmt.Errorf("funds entries need both slug and cik")
		}
	}
	return nil
}

// FundSlugs returns the slug of every tracked fund, in config order.
func (c *Config) FundSlugs() []string {
	slugs := make([]string, 0, len(c.Funds))
	for _, f := range c.Funds {
		slugs = append(slugs, f.Slug)
	}
	return slugs
}
