package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL    string `yaml:"base_url"`
	PGDSN      string `yaml:"pg_dsn"`
	OutCSV     string `yaml:"out_csv"`
	PageSize   int    `yaml:"page_size"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
	Locale     string `yaml:"locale"`
	Region     string `yaml:"region"`
}

// Load reads the optional YAML config, then fills every gap from the
// environment and finally from defaults. An empty PG_DSN selects the
// in-memory store (dry run).
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = envString("WEBSTORE_BASE_URL", "https://chrome.google.com/webstore")
	}
	if cfg.PGDSN == "" {
		cfg.PGDSN = envString("PG_DSN", "")
	}
	if cfg.OutCSV == "" {
		cfg.OutCSV = envString("OUT_CSV", "items.csv")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = envInt("PAGE_SIZE", 75)
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = envInt("HTTP_TIMEOUT_SEC", 25)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = envString("HTTP_USER_AGENT", "webstore-scraper/1.0")
	}
	if cfg.Locale == "" {
		cfg.Locale = envString("LOCALE", "en")
	}
	if cfg.Region == "" {
		cfg.Region = envString("REGION", "US")
	}
	return cfg, nil
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
