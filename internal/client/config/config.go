// Package config assembles the runtime settings of the Aerofy CLI from
// defaults, the environment (.env supported), an optional JSON file, and
// command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the Aerofy CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - DownloadDir: directory downloaded shares are saved into.
//   - SessionCachePath: SQLite file holding the persisted session snapshot.
type Config struct {
	APIBaseURL       string
	RequestTimeout   time.Duration
	DownloadDir      string
	SessionCachePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 30 * time.Second
	c.DownloadDir = "downloads"
	c.SessionCachePath = "aerofy.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
