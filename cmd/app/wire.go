//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/meteomag/internal/bootstrap"
	"github.com/yanqian/meteomag/internal/domain/advisory"
	"github.com/yanqian/meteomag/internal/domain/insights"
	"github.com/yanqian/meteomag/internal/infra/config"
	"github.com/yanqian/meteomag/internal/infra/openmeteo"
	httpiface "github.com/yanqian/meteomag/internal/interface/http"
	"github.com/yanqian/meteomag/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAdvisoryConfig,
		provideUpstreamClient,
		provideGeocoder,
		provideWeatherFetcher,
		provideInsightsConfig,
		provideInsightsStore,
		provideHistoryRepository,
		advisory.NewService,
		insights.NewService,
		wire.Bind(new(advisory.Geocoder), new(*openmeteo.Geocoder)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
