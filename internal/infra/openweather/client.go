package openweather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/meteomag/internal/domain/advisory"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// JSONGetter is the slice of upstream.Client used by the adapter.
type JSONGetter interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, dst any) error
}

// Client fetches current conditions from OpenWeatherMap. The provider reports
// textual condition groups and no UV index.
type Client struct {
	baseURL string
	apiKey  string
	client  JSONGetter
}

// NewClient builds an OpenWeatherMap adapter.
func NewClient(baseURL, apiKey string, client JSONGetter) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("openweather api key is required")
	}
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(endpoint, "/"), apiKey: key, client: client}, nil
}

// Fetch returns the current observation at the coordinates.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (advisory.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	var raw currentResponse
	if err := c.client.GetJSON(ctx, c.baseURL, params, &raw); err != nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("openweather request: %w", err)
	}
	return toSnapshot(raw)
}

type currentResponse struct {
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike float64  `json:"feels_like"`
		Humidity  int      `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Dt       int64  `json:"dt"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

func toSnapshot(raw currentResponse) (advisory.WeatherSnapshot, error) {
	if raw.Main.Temp == nil {
		return advisory.WeatherSnapshot{}, fmt.Errorf("main.temp missing: %w", advisory.ErrIncompleteWeather)
	}
	if len(raw.Weather) == 0 || strings.TrimSpace(raw.Weather[0].Main) == "" {
		return advisory.WeatherSnapshot{}, fmt.Errorf("weather condition missing: %w", advisory.ErrIncompleteWeather)
	}

	snapshot := advisory.WeatherSnapshot{
		TemperatureC:  *raw.Main.Temp,
		ConditionName: raw.Weather[0].Main,
	}
	if raw.Wind != nil {
		snapshot.WindSpeedMps = raw.Wind.Speed
	}
	if raw.Dt > 0 {
		snapshot.ObservedAt = time.Unix(raw.Dt, 0).In(time.FixedZone("", raw.Timezone))
	}
	return snapshot, nil
}

var _ advisory.WeatherFetcher = (*Client)(nil)
