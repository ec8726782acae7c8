package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aerofy/aerofy-cli/internal/flagx"
	"github.com/aerofy/aerofy-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	DownloadDir      string         `json:"download_dir"`
	SessionCachePath string         `json:"session_cache_path"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// the -c/-config flags. When no file is specified, nothing happens. Only
// fields present in the file override the current values. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.SessionCachePath != "" {
		cfg.SessionCachePath = jc.SessionCachePath
	}
}
