package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/archipelago-data-aggregation/internal/common"
	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/store"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// UpstreamBaseURL is the data service serving every category.
	UpstreamBaseURL string        `validate:"required,url"`
	HTTPTimeout     time.Duration `validate:"gt=0"`

	StoreBackend   string `validate:"oneof=memory file redis sqlite"`
	StoreDir       string `validate:"required_if=StoreBackend file"`
	RedisURL       string `validate:"required_if=StoreBackend redis"`
	SQLitePath     string `validate:"required_if=StoreBackend sqlite"`
	CacheKeyPrefix string

	// Validity windows by category. Zero means trusted for the session only.
	Windows map[freshness.Category]time.Duration

	// Refresh intervals by category. Zero disables the periodic job.
	Intervals map[freshness.Category]time.Duration

	// RefreshForce makes periodic ticks bypass freshness.
	RefreshForce bool

	// WaterCutsFile replaces the water-cuts endpoint with a watched JSON file.
	WaterCutsFile string

	// ForecastCommunes are sub-keys refreshed alongside the whole forecast.
	ForecastCommunes []string `validate:"dive,numeric,len=5"`

	AirAlertLabels []string `validate:"dive,required"`

	LogLevel string `validate:"oneof=trace debug info warn warning error fatal panic"`

	// Location is the local time zone used to pick "today" for water cuts.
	Location *time.Location `validate:"required"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.WithComponent("config").Infof("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.UpstreamBaseURL = strings.TrimRight(os.Getenv("UPSTREAM_BASE_URL"), "/")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	cfg.StoreBackend = strings.ToLower(getenvDefault("STORE_BACKEND", store.BackendFile))
	cfg.StoreDir = getenvDefault("STORE_DIR", "data/cache")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.SQLitePath = getenvDefault("SQLITE_PATH", "data/cache.db")
	cfg.CacheKeyPrefix = getenvDefault("CACHE_KEY_PREFIX", "gwada")

	cfg.Windows = make(map[freshness.Category]time.Duration)
	for cat, def := range freshness.DefaultWindows() {
		if cfg.Windows[cat], err = getenvDuration(envName(cat, "VALIDITY"), def); err != nil {
			return nil, err
		}
	}

	cfg.Intervals = make(map[freshness.Category]time.Duration)
	for cat, def := range DefaultIntervals() {
		if cfg.Intervals[cat], err = getenvDuration(envName(cat, "REFRESH_INTERVAL"), def); err != nil {
			return nil, err
		}
	}

	if cfg.RefreshForce, err = getenvBool("REFRESH_FORCE", true); err != nil {
		return nil, err
	}

	cfg.WaterCutsFile = os.Getenv("WATER_CUTS_FILE")
	cfg.ForecastCommunes = common.SplitList(os.Getenv("FORECAST_COMMUNES"))

	cfg.AirAlertLabels = common.SplitList(os.Getenv("AIR_ALERT_LABELS"))
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))

	tz := getenvDefault("TIMEZONE", "America/Guadeloupe")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and the duration maps.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for cat, d := range c.Windows {
		if d < 0 {
			return fmt.Errorf("invalid configuration: %s validity window is negative", cat)
		}
	}
	for cat, d := range c.Intervals {
		if d < 0 {
			return fmt.Errorf("invalid configuration: %s refresh interval is negative", cat)
		}
	}
	return nil
}

// DefaultIntervals match the validity windows. Water cuts are refreshed at
// startup and when their file changes.
func DefaultIntervals() map[freshness.Category]time.Duration {
	return map[freshness.Category]time.Duration{
		freshness.Weather:    45 * time.Minute,
		freshness.Vigilance:  10 * time.Minute,
		freshness.AirQuality: 30 * time.Minute,
		freshness.WaterCuts:  0,
		freshness.Forecast:   3 * time.Hour,
	}
}

// envName turns air-quality + VALIDITY into AIR_QUALITY_VALIDITY.
func envName(cat freshness.Category, suffix string) string {
	return strings.ToUpper(strings.ReplaceAll(string(cat), "-", "_")) + "_" + suffix
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

// getenvDuration accepts Go durations ("45m") or plain seconds ("2700").
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if n := getenvInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid %s: %q", key, v)
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
