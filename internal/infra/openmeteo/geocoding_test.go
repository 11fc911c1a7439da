package openmeteo

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

func TestGeocoderResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "Казань", q.Get("name"))
		require.Equal(t, "1", q.Get("count"))
		require.Equal(t, "ru", q.Get("language"))
		require.Equal(t, "json", q.Get("format"))
		_, _ = w.Write([]byte(`{"results":[{"id":551487,"name":"Казань","latitude":55.78874,"longitude":49.12214,"feature_code":"PPLA","country_code":"RU","country":"Россия","admin1":"Татарстан","timezone":"Europe/Moscow"}],"generationtime_ms":0.9}`))
	}))
	defer server.Close()

	geo := NewGeocoder(server.URL, "", newGetter())
	place, found, err := geo.Resolve(context.Background(), "Казань")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, advisory.GeoResult{
		Latitude:    55.78874,
		Longitude:   49.12214,
		PlaceKind:   "PPLA",
		DisplayName: "Казань",
		Country:     "Россия",
		Region:      "Татарстан",
		Timezone:    "Europe/Moscow",
	}, place)
}

func TestGeocoderNoResults(t *testing.T) {
	for _, body := range []string{`{"generationtime_ms":0.5}`, `{"results":[]}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		geo := NewGeocoder(server.URL, "ru", newGetter())
		_, found, err := geo.Resolve(context.Background(), "Нигдебург")
		server.Close()
		require.NoError(t, err)
		require.False(t, found)
	}
}

func TestGeocoderMissingFeatureCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"name":"Где-то","latitude":1.5,"longitude":2.5}]}`))
	}))
	defer server.Close()

	place, found, err := NewGeocoder(server.URL, "ru", newGetter()).Resolve(context.Background(), "Где-то")
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, place.PlaceKind)
	require.False(t, advisory.IsSettlement(place))
}

func TestGeocoderUpstreamErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":true,"reason":"bad"}`, http.StatusBadRequest)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		},
		"shape": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":{"name":"x"}}`))
		},
		"coordinates": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[{"name":"x","feature_code":"PPL"}]}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()
			_, found, err := NewGeocoder(server.URL, "ru", newGetter()).Resolve(context.Background(), "x")
			require.Error(t, err)
			require.False(t, found)
		})
	}
}

func newGetter() *upstream.Client {
	return upstream.NewClient(upstream.Config{MaxAttempts: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
