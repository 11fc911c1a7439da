package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/meteomag/internal/domain/advisory"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	localTimeLayout    = "2006-01-02T15:04"
)

// Forecaster fetches current conditions from the Open-Meteo forecast API.
type Forecaster struct {
	baseURL string
	client  JSONGetter
}

// NewForecaster builds a forecaster; an empty baseURL targets the public API.
func NewForecaster(baseURL string, client JSONGetter) *Forecaster {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultForecastURL
	}
	return &Forecaster{baseURL: strings.TrimRight(endpoint, "/"), client: client}
}

// Fetch returns the current observation. The UV index is read from the
// first hour of the hourly series and stays nil when the series is empty.
func (f *Forecaster) Fetch(ctx context.Context, latitude, longitude float64) (advisory.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current", "temperature_2m,weather_code,wind_speed_10m")
	params.Set("hourly", "uv_index")
	params.Set("forecast_hours", "1")
	params.Set("wind_speed_unit", "ms")
	params.Set("timezone", "auto")

	var raw forecastResponse
	if err := f.client.GetJSON(ctx, f.baseURL, params, &raw); err != nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("forecast request: %w", err)
	}
	return toSnapshot(raw)
}

type forecastResponse struct {
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	Timezone         string        `json:"timezone"`
	UTCOffsetSeconds int           `json:"utc_offset_seconds"`
	Current          *currentBlock `json:"current"`
	Hourly           *hourlySeries `json:"hourly"`
}

type currentBlock struct {
	Time          string   `json:"time"`
	Temperature2m *float64 `json:"temperature_2m"`
	WeatherCode   *int     `json:"weather_code"`
	WindSpeed10m  *float64 `json:"wind_speed_10m"`
}

type hourlySeries struct {
	Time    []string   `json:"time"`
	UVIndex []*float64 `json:"uv_index"`
}

func toSnapshot(raw forecastResponse) (advisory.WeatherSnapshot, error) {
	if raw.Current == nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("current block missing: %w", advisory.ErrIncompleteWeather)
	}
	if raw.Current.Temperature2m == nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("current.temperature_2m missing: %w", advisory.ErrIncompleteWeather)
	}
	if raw.Current.WeatherCode == nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("current.weather_code missing: %w", advisory.ErrIncompleteWeather)
	}

	snapshot := advisory.WeatherSnapshot{
		TemperatureC: *raw.Current.Temperature2m,
		WeatherCode:  *raw.Current.WeatherCode,
		WindSpeedMps: raw.Current.WindSpeed10m,
		ObservedAt:   parseLocalTime(raw.Current.Time, raw.Timezone, raw.UTCOffsetSeconds),
	}
	if raw.Hourly != nil && len(raw.Hourly.UVIndex) > 0 && raw.Hourly.UVIndex[0] != nil {
		value := *raw.Hourly.UVIndex[0]
		snapshot.UVIndex = &value
	}
	return snapshot, nil
}

func parseLocalTime(value, zone string, offsetSeconds int) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	name := zone
	if name == "" {
		name = "UTC"
	}
	ts, err := time.ParseInLocation(localTimeLayout, value, time.FixedZone(name, offsetSeconds))
	if err != nil {
		return time.Time{}
	}
	return ts
}

var _ advisory.WeatherFetcher = (*Forecaster)(nil)
