package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/meteomag/internal/domain/advisory"
	"github.com/yanqian/meteomag/internal/domain/insights"
	"github.com/yanqian/meteomag/internal/infra/config"
	"github.com/yanqian/meteomag/internal/infra/historyrepo"
	"github.com/yanqian/meteomag/internal/infra/insightstore"
	"github.com/yanqian/meteomag/internal/infra/openmeteo"
	"github.com/yanqian/meteomag/internal/infra/openweather"
	"github.com/yanqian/meteomag/internal/infra/upstream"
)

func provideAdvisoryConfig(cfg *config.Config) advisory.Config {
	return advisory.Config{ShowIcons: cfg.Advisory.ShowIcons}
}

func provideUpstreamClient(cfg *config.Config, logger *slog.Logger) *upstream.Client {
	return upstream.NewClient(upstream.Config{
		Timeout:     cfg.Upstream.Timeout,
		MaxAttempts: cfg.Upstream.MaxAttempts,
		BaseBackoff: cfg.Upstream.BaseBackoff,
		UserAgent:   cfg.Upstream.UserAgent,
	}, logger)
}

func provideGeocoder(cfg *config.Config, client *upstream.Client) *openmeteo.Geocoder {
	return openmeteo.NewGeocoder(cfg.Geocoding.BaseURL, cfg.Geocoding.Language, client)
}

func provideWeatherFetcher(cfg *config.Config, client *upstream.Client, logger *slog.Logger) (advisory.WeatherFetcher, error) {
	switch cfg.Weather.Provider {
	case config.ProviderOpenWeather:
		logger.Info("weather provider selected", "provider", cfg.Weather.Provider)
		return openweather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, client)
	case config.ProviderOpenMeteo, "":
		logger.Info("weather provider selected", "provider", config.ProviderOpenMeteo)
		return openmeteo.NewForecaster(cfg.Weather.BaseURL, client), nil
	default:
		return nil, fmt.Errorf("unsupported weather provider %q", cfg.Weather.Provider)
	}
}

func provideInsightsConfig(cfg *config.Config) insights.Config {
	return insights.Config{
		TrendingLimit: cfg.Insights.TrendingLimit,
		RecentLimit:   cfg.Insights.RecentLimit,
	}
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) insights.HistoryRepository {
	fallback := historyrepo.NewMemoryRepository(0)
	dsn := strings.TrimSpace(cfg.Insights.Postgres.DSN)
	if dsn == "" {
		logger.Info("insights postgres dsn not set, using memory history")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory history", "error", err)
		return fallback
	}
	if cfg.Insights.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Insights.Postgres.MaxConns
	}
	if cfg.Insights.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Insights.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory history", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory history", "error", err)
		pool.Close()
		return fallback
	}
	repo := historyrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("history schema setup failed, using memory history", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("insights postgres history enabled")
	return repo
}

func provideInsightsStore(cfg *config.Config, logger *slog.Logger) insights.Store {
	if !cfg.Insights.Redis.Enabled {
		return insightstore.NewMemoryStore()
	}
	opt, err := buildValkeyOptions(cfg.Insights.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return insightstore.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return insightstore.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return insightstore.NewMemoryStore()
	}
	logger.Info("insights valkey store enabled", "addr", cfg.Insights.Redis.Addr)
	return insightstore.NewValkeyStore(client, "")
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
