package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"yieldcurve/internal/provider"

	"github.com/charmbracelet/log"
)

type Config struct {
	FREDAPIKey string
	TenorFile  string
	TenorDir   string
	ChartPath  string

	HTTPTimeoutSecs     int
	FREDLookbackDays    int
	FREDRateLimitPerMin int
	FetchConcurrency    int

	HTTPPort     int
	ServerAPIKey string

	LogLevel log.Level
}

func Load() *Config {
	cfg := &Config{
		FREDAPIKey:   strings.TrimSpace(os.Getenv("FRED_API_KEY")),
		TenorFile:    strings.TrimSpace(os.Getenv("TENOR_FILE")),
		ServerAPIKey: strings.TrimSpace(os.Getenv("SERVER_API_KEY")),
	}

	if cfg.FREDAPIKey == "" {
		log.Info("FRED_API_KEY not set, US curve will use FiscalData with the FRED CSV fallback")
	}

	cfg.TenorDir = strings.TrimSpace(os.Getenv("TENOR_DIR"))
	if cfg.TenorDir == "" {
		cfg.TenorDir = "."
	}

	cfg.ChartPath = strings.TrimSpace(os.Getenv("CHART_PATH"))
	if cfg.ChartPath == "" {
		cfg.ChartPath = "yield_curve_us_canada.png"
	}

	cfg.HTTPTimeoutSecs = 20
	if v := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutSecs = n
		} else {
			log.Warn("invalid HTTP_TIMEOUT_SECS, using default", "value", v, "default", cfg.HTTPTimeoutSecs)
		}
	}

	cfg.FREDLookbackDays = 120
	if v := strings.TrimSpace(os.Getenv("FRED_LOOKBACK_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FREDLookbackDays = n
		} else {
			log.Warn("invalid FRED_LOOKBACK_DAYS, using default", "value", v, "default", cfg.FREDLookbackDays)
		}
	}

	cfg.FREDRateLimitPerMin = 120
	if v := strings.TrimSpace(os.Getenv("FRED_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FREDRateLimitPerMin = n
		} else {
			log.Warn("invalid FRED_RATE_LIMIT_PER_MIN, using default", "value", v, "default", cfg.FREDRateLimitPerMin)
		}
	}

	cfg.FetchConcurrency = 4
	if v := strings.TrimSpace(os.Getenv("FETCH_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchConcurrency = n
		} else {
			log.Warn("invalid FETCH_CONCURRENCY, using default", "value", v, "default", cfg.FetchConcurrency)
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			cfg.HTTPPort = n
		} else {
			log.Warn("invalid HTTP_PORT, using default", "value", v, "default", cfg.HTTPPort)
		}
	}

	cfg.LogLevel = log.InfoLevel
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		if lvl, err := log.ParseLevel(strings.ToLower(v)); err == nil {
			cfg.LogLevel = lvl
		} else {
			log.Warn("invalid LOG_LEVEL, using info", "value", v)
		}
	}

	return cfg
}

// HTTPTimeout is the per-request upstream timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSecs) * time.Second
}

// ProviderSettings maps the fetch tuning onto the adapters' settings.
func (c *Config) ProviderSettings() provider.Settings {
	return provider.Settings{
		Timeout:       c.HTTPTimeout(),
		LookbackDays:  c.FREDLookbackDays,
		Concurrency:   c.FetchConcurrency,
		RatePerMinute: c.FREDRateLimitPerMin,
	}
}
