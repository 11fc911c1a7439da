package advisory

import (
	"errors"
	"time"
)

// Request captures the payload accepted by the advisory service.
type Request struct {
	Location string `json:"location"`
}

// Response is the composed advisory serialized back to API consumers.
type Response struct {
	Query          string   `json:"query"`
	Place          string   `json:"place"`
	Country        string   `json:"country,omitempty"`
	Region         string   `json:"region,omitempty"`
	PlaceKind      string   `json:"placeKind"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	ObservedAt     string   `json:"observedAt,omitempty"`
	TemperatureC   float64  `json:"temperatureC"`
	WindSpeedMps   *float64 `json:"windSpeedMps,omitempty"`
	UVIndex        *float64 `json:"uvIndex,omitempty"`
	Condition      Category `json:"condition"`
	ConditionText  string   `json:"conditionText"`
	Hazards        Hazards  `json:"hazards"`
	Recommendation string   `json:"recommendation"`
	Text           string   `json:"text"`
}

// GeoResult is the top ranked geocoding candidate for a query.
type GeoResult struct {
	Latitude    float64
	Longitude   float64
	PlaceKind   string
	DisplayName string
	Country     string
	Region      string
	Timezone    string
}

// WeatherSnapshot is the current observation returned by a weather provider.
// Nil pointers and a zero ObservedAt mean the provider did not report the value.
type WeatherSnapshot struct {
	TemperatureC float64
	// WeatherCode is a WMO code; ignored when ConditionName is set.
	WeatherCode   int
	ConditionName string
	WindSpeedMps  *float64
	UVIndex       *float64
	ObservedAt    time.Time
}

// Condition resolves the snapshot to a described condition.
func (s WeatherSnapshot) Condition() Condition {
	if s.ConditionName != "" {
		return describeCategory(ClassifyName(s.ConditionName))
	}
	return Describe(s.WeatherCode)
}

// ErrIncompleteWeather is returned by fetchers when the provider answered
// but a required field (temperature, condition) is missing.
var ErrIncompleteWeather = errors.New("weather payload incomplete")

// Config wires runtime options for the advisory domain.
type Config struct {
	ShowIcons bool
}

// Error codes attached to failures returned by Service.Advise.
const (
	CodeInvalidInput       = "invalid_input"
	CodeLocationNotFound   = "location_not_found"
	CodeNotASettlement     = "not_a_settlement"
	CodeWeatherUnavailable = "weather_unavailable"
	CodeTemporaryFailure   = "temporary_failure"
)
