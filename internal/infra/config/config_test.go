package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderOpenMeteo, cfg.Weather.Provider)
	require.Equal(t, "ru", cfg.Geocoding.Language)
	require.True(t, cfg.Advisory.ShowIcons)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
upstream:
  timeout: 3s
  maxAttempts: 4
weather:
  provider: openweather
  apiKey: from-file
advisory:
  showIcons: false
`), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("UPSTREAM_BASE_BACKOFF", "50ms")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("INSIGHTS_REDIS_ENABLED", "true")
	t.Setenv("INSIGHTS_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	require.Equal(t, 4, cfg.Upstream.MaxAttempts)
	require.Equal(t, 50*time.Millisecond, cfg.Upstream.BaseBackoff)
	require.Equal(t, ProviderOpenWeather, cfg.Weather.Provider)
	require.Equal(t, "from-file", cfg.Weather.APIKey)
	require.False(t, cfg.Advisory.ShowIcons)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Insights.Redis.Enabled)
	require.Equal(t, "localhost:6379", cfg.Insights.Redis.Addr)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"provider":      func(c *Config) { c.Weather.Provider = "darksky" },
		"openweather":   func(c *Config) { c.Weather.Provider = ProviderOpenWeather },
		"timeout":       func(c *Config) { c.Upstream.Timeout = 0 },
		"attempts":      func(c *Config) { c.Upstream.MaxAttempts = 0 },
		"language":      func(c *Config) { c.Geocoding.Language = " " },
		"redis":         func(c *Config) { c.Insights.Redis.Enabled = true },
		"rateLimit":     func(c *Config) { c.HTTP.RateLimit.Burst = 0 },
		"emptyAddress":  func(c *Config) { c.HTTP.Address = "" },
		"negativeLimit": func(c *Config) { c.Insights.RecentLimit = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
