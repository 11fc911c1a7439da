package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/meteomag/internal/domain/advisory"
	"github.com/yanqian/meteomag/internal/infra/upstream"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "59.93", q.Get("lat"))
		require.Equal(t, "30.31", q.Get("lon"))
		require.Equal(t, "secret", q.Get("appid"))
		require.Equal(t, "metric", q.Get("units"))
		_, _ = w.Write([]byte(`{"main":{"temp":-2.5,"feels_like":-6,"humidity":80},"weather":[{"id":601,"main":"Snow","description":"snow"}],"wind":{"speed":5.5},"dt":1791968400,"timezone":10800,"name":"Saint Petersburg"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret", newGetter())
	require.NoError(t, err)

	snap, err := client.Fetch(context.Background(), 59.93, 30.31)
	require.NoError(t, err)
	require.Equal(t, -2.5, snap.TemperatureC)
	require.Equal(t, "Snow", snap.ConditionName)
	require.Equal(t, 5.5, *snap.WindSpeedMps)
	require.Nil(t, snap.UVIndex)
	_, offset := snap.ObservedAt.Zone()
	require.Equal(t, 10800, offset)
	require.Equal(t, int64(1791968400), snap.ObservedAt.Unix())
	require.Equal(t, advisory.CategorySnow, snap.Condition().Category)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "  ", newGetter())
	require.Error(t, err)
}

func TestToSnapshotMissingFields(t *testing.T) {
	_, err := toSnapshot(currentResponse{})
	require.ErrorIs(t, err, advisory.ErrIncompleteWeather)

	temp := 3.0
	raw := currentResponse{}
	raw.Main.Temp = &temp
	_, err = toSnapshot(raw)
	require.ErrorIs(t, err, advisory.ErrIncompleteWeather)
}

func TestClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "bad", newGetter())
	require.NoError(t, err)
	_, err = client.Fetch(context.Background(), 1, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, advisory.ErrIncompleteWeather)
}

func newGetter() *upstream.Client {
	return upstream.NewClient(upstream.Config{MaxAttempts: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
