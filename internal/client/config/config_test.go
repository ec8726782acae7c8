package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"aerofy"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "downloads", cfg.DownloadDir)
	require.Equal(t, "aerofy.db", cfg.SessionCachePath)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("AEROFY_API_URL", "https://api.example.com/api")
	t.Setenv("AEROFY_DOWNLOAD_DIR", "/tmp/dl")
	t.Setenv("AEROFY_TIMEOUT", "90s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	require.Equal(t, "/tmp/dl", cfg.DownloadDir)
	require.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("AEROFY_TIMEOUT", "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	withArgs(t, []string{"-a", "https://flag.example.com", "-t", "10", "-d", "dl"})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "dl", cfg.DownloadDir)
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://json.example.com/api",
		"request_timeout": "45s",
		"download_dir": "incoming"
	}`), 0o600))

	withArgs(t, []string{"-c", path})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://json.example.com/api", cfg.APIBaseURL)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	require.Equal(t, "incoming", cfg.DownloadDir)
	require.Equal(t, "aerofy.db", cfg.SessionCachePath, "unset fields keep their defaults")
}

func TestLoadConfig_FlagBeatsJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "https://json.example.com"}`), 0o600))

	withArgs(t, []string{"-c", path, "-a", "https://flag.example.com"})

	cfg := LoadConfig()
	require.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
}
