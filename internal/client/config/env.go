package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a local
// .env file first when one exists. A missing .env is not an error.
//
// Recognized variables:
//
//	AEROFY_API_URL       base URL of the backend API
//	AEROFY_DOWNLOAD_DIR  download directory
//	AEROFY_TIMEOUT       request timeout as a Go duration ("30s")
//	AEROFY_SESSION_DB    session cache path
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("AEROFY_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("AEROFY_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("AEROFY_SESSION_DB"); v != "" {
		cfg.SessionCachePath = v
	}
	if v := os.Getenv("AEROFY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
