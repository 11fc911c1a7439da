package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Weather providers accepted by weather.provider.
const (
	ProviderOpenMeteo   = "openmeteo"
	ProviderOpenWeather = "openweather"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Weather   WeatherConfig   `yaml:"weather"`
	Advisory  AdvisoryConfig  `yaml:"advisory"`
	Insights  InsightsConfig  `yaml:"insights"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// UpstreamConfig configures the shared outbound client and its retries.
type UpstreamConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	UserAgent   string        `yaml:"userAgent"`
}

// GeocodingConfig points at the geocoding API.
type GeocodingConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	Language string `yaml:"language"`
}

// WeatherConfig selects and configures the weather provider. An empty
// BaseURL uses the public endpoint of the selected provider.
type WeatherConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"baseUrl"`
	APIKey   string `yaml:"apiKey"`
}

// AdvisoryConfig controls advisory rendering.
type AdvisoryConfig struct {
	ShowIcons bool `yaml:"showIcons"`
}

// InsightsConfig controls lookup history and trending places.
type InsightsConfig struct {
	TrendingLimit int            `yaml:"trendingLimit"`
	RecentLimit   int            `yaml:"recentLimit"`
	Redis         RedisConfig    `yaml:"redis"`
	Postgres      PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for the counter store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = parsed
		}
	}
	if v := os.Getenv("UPSTREAM_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Upstream.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("UPSTREAM_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("GEOCODING_BASE_URL"); v != "" {
		cfg.Geocoding.BaseURL = v
	}
	if v := os.Getenv("GEOCODING_LANGUAGE"); v != "" {
		cfg.Geocoding.Language = v
	}
	if v := os.Getenv("WEATHER_PROVIDER"); v != "" {
		cfg.Weather.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("ADVISORY_SHOW_ICONS"); v != "" {
		cfg.Advisory.ShowIcons = parseBool(v)
	}
	if v := os.Getenv("INSIGHTS_TRENDING_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Insights.TrendingLimit = parsed
		}
	}
	if v := os.Getenv("INSIGHTS_RECENT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Insights.RecentLimit = parsed
		}
	}
	if v := os.Getenv("INSIGHTS_REDIS_ENABLED"); v != "" {
		cfg.Insights.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("INSIGHTS_REDIS_ADDR"); v != "" {
		cfg.Insights.Redis.Addr = v
	}
	if v := os.Getenv("INSIGHTS_POSTGRES_DSN"); v != "" {
		cfg.Insights.Postgres.DSN = v
	}
	if v := os.Getenv("INSIGHTS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Insights.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("INSIGHTS_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Insights.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Upstream: UpstreamConfig{
			Timeout:     8 * time.Second,
			MaxAttempts: 2,
			BaseBackoff: 200 * time.Millisecond,
			UserAgent:   "meteomag/1.0",
		},
		Geocoding: GeocodingConfig{
			BaseURL:  "https://geocoding-api.open-meteo.com/v1/search",
			Language: "ru",
		},
		Weather: WeatherConfig{
			Provider: ProviderOpenMeteo,
		},
		Advisory: AdvisoryConfig{
			ShowIcons: true,
		},
		Insights: InsightsConfig{
			TrendingLimit: 10,
			RecentLimit:   50,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if c.Upstream.MaxAttempts <= 0 {
		return errors.New("upstream.maxAttempts must be positive")
	}
	if c.Upstream.BaseBackoff < 0 {
		return errors.New("upstream.baseBackoff cannot be negative")
	}
	if strings.TrimSpace(c.Geocoding.BaseURL) == "" {
		return errors.New("geocoding.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Geocoding.Language) == "" {
		return errors.New("geocoding.language cannot be empty")
	}
	switch c.Weather.Provider {
	case ProviderOpenMeteo:
	case ProviderOpenWeather:
		if strings.TrimSpace(c.Weather.APIKey) == "" {
			return errors.New("weather.apiKey is required for the openweather provider")
		}
	default:
		return fmt.Errorf("weather.provider %q is not supported", c.Weather.Provider)
	}
	if c.Insights.TrendingLimit < 0 {
		return errors.New("insights.trendingLimit cannot be negative")
	}
	if c.Insights.RecentLimit < 0 {
		return errors.New("insights.recentLimit cannot be negative")
	}
	if c.Insights.Redis.Enabled && strings.TrimSpace(c.Insights.Redis.Addr) == "" {
		return errors.New("insights.redis.addr cannot be empty when redis is enabled")
	}
	return nil
}
