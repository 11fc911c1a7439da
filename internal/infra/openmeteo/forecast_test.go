package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/meteomag/internal/domain/advisory"
)

const forecastBody = `{
  "latitude": 55.75, "longitude": 37.625, "timezone": "Europe/Moscow", "utc_offset_seconds": 10800,
  "current": {"time": "2026-10-14T12:15", "interval": 900, "temperature_2m": 8.4, "weather_code": 61, "wind_speed_10m": 4.1},
  "hourly": {"time": ["2026-10-14T12:00"], "uv_index": [1.35]}
}`

func TestForecasterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "55.75", q.Get("latitude"))
		require.Equal(t, "37.62", q.Get("longitude"))
		require.Equal(t, "temperature_2m,weather_code,wind_speed_10m", q.Get("current"))
		require.Equal(t, "uv_index", q.Get("hourly"))
		require.Equal(t, "ms", q.Get("wind_speed_unit"))
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	snap, err := NewForecaster(server.URL, newGetter()).Fetch(context.Background(), 55.75, 37.62)
	require.NoError(t, err)
	require.Equal(t, 8.4, snap.TemperatureC)
	require.Equal(t, 61, snap.WeatherCode)
	require.NotNil(t, snap.WindSpeedMps)
	require.Equal(t, 4.1, *snap.WindSpeedMps)
	require.NotNil(t, snap.UVIndex)
	require.Equal(t, 1.35, *snap.UVIndex)
	require.Equal(t, "2026-10-14T12:15:00+03:00", snap.ObservedAt.Format(time.RFC3339))
	require.Equal(t, advisory.CategoryRain, snap.Condition().Category)
}

func TestToSnapshotOptionalFields(t *testing.T) {
	temp := -3.0
	code := 73
	snap, err := toSnapshot(forecastResponse{
		Current: &currentBlock{Temperature2m: &temp, WeatherCode: &code},
		Hourly:  &hourlySeries{UVIndex: []*float64{nil}},
	})
	require.NoError(t, err)
	require.Nil(t, snap.WindSpeedMps)
	require.Nil(t, snap.UVIndex)
	require.True(t, snap.ObservedAt.IsZero())

	snap, err = toSnapshot(forecastResponse{Current: &currentBlock{Temperature2m: &temp, WeatherCode: &code}})
	require.NoError(t, err)
	require.Nil(t, snap.UVIndex)
}

func TestToSnapshotMissingRequired(t *testing.T) {
	temp := 10.0
	code := 0
	cases := []forecastResponse{
		{},
		{Current: &currentBlock{WeatherCode: &code}},
		{Current: &currentBlock{Temperature2m: &temp}},
	}
	for _, raw := range cases {
		_, err := toSnapshot(raw)
		require.ErrorIs(t, err, advisory.ErrIncompleteWeather)
	}
}

func TestForecasterUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewForecaster(server.URL, newGetter()).Fetch(context.Background(), 1, 2)
	require.Error(t, err)
	require.NotErrorIs(t, err, advisory.ErrIncompleteWeather)
}

func TestParseLocalTime(t *testing.T) {
	ts := parseLocalTime("2026-01-02T03:04", "", 0)
	require.Equal(t, time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC).Unix(), ts.Unix())
	require.True(t, parseLocalTime("yesterday", "UTC", 0).IsZero())
	require.True(t, parseLocalTime("", "UTC", 0).IsZero())
}
