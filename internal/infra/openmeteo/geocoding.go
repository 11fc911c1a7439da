package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yanqian/meteomag/internal/domain/advisory"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultLanguage     = "ru"
)

// Geocoder resolves place names with the Open-Meteo geocoding API.
type Geocoder struct {
	baseURL  string
	language string
	client   JSONGetter
}

// NewGeocoder builds a geocoder; empty arguments fall back to the public API in Russian.
func NewGeocoder(baseURL, language string, client JSONGetter) *Geocoder {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultGeocodingURL
	}
	lang := strings.TrimSpace(language)
	if lang == "" {
		lang = defaultLanguage
	}
	return &Geocoder{
		baseURL:  strings.TrimRight(endpoint, "/"),
		language: lang,
		client:   client,
	}
}

// Resolve returns the top ranked candidate for the query.
func (g *Geocoder) Resolve(ctx context.Context, query string) (advisory.GeoResult, bool, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", g.language)
	params.Set("format", "json")

	var raw searchResponse
	if err := g.client.GetJSON(ctx, g.baseURL, params, &raw); err != nil {
		return advisory.GeoResult{}, false, fmt.Errorf("geocoding %q: %w", query, err)
	}
	if raw.Error {
		return advisory.GeoResult{}, false, fmt.Errorf("geocoding api error: %s", raw.Reason)
	}
	if len(raw.Results) == 0 {
		return advisory.GeoResult{}, false, nil
	}

	top := raw.Results[0]
	if top.Latitude == nil || top.Longitude == nil {
		return advisory.GeoResult{}, false, fmt.Errorf("geocoding result for %q has no coordinates", query)
	}
	return advisory.GeoResult{
		Latitude:    *top.Latitude,
		Longitude:   *top.Longitude,
		PlaceKind:   top.FeatureCode,
		DisplayName: top.Name,
		Country:     top.Country,
		Region:      top.Admin1,
		Timezone:    top.Timezone,
	}, true, nil
}

type searchResponse struct {
	Results []candidate `json:"results"`
	Error   bool        `json:"error"`
	Reason  string      `json:"reason"`
}

type candidate struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	FeatureCode string   `json:"feature_code"`
	CountryCode string   `json:"country_code"`
	Country     string   `json:"country"`
	Admin1      string   `json:"admin1"`
	Timezone    string   `json:"timezone"`
}

var _ advisory.Geocoder = (*Geocoder)(nil)
