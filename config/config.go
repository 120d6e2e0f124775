// Package config centralises runtime configuration for the Alpaca clients:
// credentials, environment selection, and endpoint overrides.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects the trading environment requests are sent to.
type Environment string

const (
	// EnvPaper targets the paper trading environment.
	EnvPaper Environment = "paper"
	// EnvLive targets the live trading environment.
	EnvLive Environment = "live"
)

// ErrMissingCredentials is returned when no API key pair could be resolved.
var ErrMissingCredentials = errors.New("config: missing APCA_KEY_ID or APCA_SECRET")

// Credentials is the API key pair sent with every authenticated request.
type Credentials struct {
	KeyID  string
	Secret string
}

// Settings is the configuration tree consumed by the command-line tools.
type Settings struct {
	Environment Environment
	Credentials Credentials
	// Feed selects the realtime market-data source (iex or sip).
	Feed string
	// TradingURL and DataURL override the vendor endpoints; empty values keep
	// the defaults for the selected environment.
	TradingURL string
	DataURL    string
	StreamURL  string
	// HTTPTimeout bounds each REST request.
	HTTPTimeout time.Duration
	// RequestsPerMinute caps the client-side request rate; zero disables the
	// limiter.
	RequestsPerMinute int
}

// Default returns the configuration used when nothing is overridden: paper
// trading on the free IEX feed.
func Default() Settings {
	return Settings{
		Environment:       EnvPaper,
		Feed:              "iex",
		HTTPTimeout:       30 * time.Second,
		RequestsPerMinute: 200,
	}
}

// FromEnv resolves the configuration from the environment, first loading a
// .env file when one is present. Credentials are required; everything else
// falls back to defaults.
func FromEnv() (Settings, error) {
	// Missing .env is fine; explicit environment variables still apply.
	_ = godotenv.Load()

	cfg := Default()
	cfg.Credentials.KeyID = strings.TrimSpace(os.Getenv("APCA_KEY_ID"))
	cfg.Credentials.Secret = strings.TrimSpace(os.Getenv("APCA_SECRET"))
	if cfg.Credentials.KeyID == "" || cfg.Credentials.Secret == "" {
		return Settings{}, ErrMissingCredentials
	}

	if env := strings.ToLower(strings.TrimSpace(os.Getenv("APCA_ENV"))); env != "" {
		cfg.Environment = Environment(env)
	}
	if feed := strings.ToLower(strings.TrimSpace(os.Getenv("APCA_FEED"))); feed != "" {
		cfg.Feed = feed
	}
	if v := strings.TrimSpace(os.Getenv("APCA_TRADING_URL")); v != "" {
		cfg.TradingURL = v
	}
	if v := strings.TrimSpace(os.Getenv("APCA_DATA_URL")); v != "" {
		cfg.DataURL = v
	}
	if v := strings.TrimSpace(os.Getenv("APCA_STREAM_URL")); v != "" {
		cfg.StreamURL = v
	}
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("APCA_HTTP_TIMEOUT"))); err == nil && d > 0 {
		cfg.HTTPTimeout = d
	}
	return cfg, nil
}

// Live reports whether the settings target the live trading environment.
func (s Settings) Live() bool {
	return s.Environment == EnvLive
}
