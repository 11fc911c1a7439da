package advisory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/meteomag/pkg/errors"
)

// Service exposes the location to advisory pipeline.
type Service interface {
	Advise(ctx context.Context, req Request) (Response, error)
	// Reply returns the advisory text or the user message of the failure.
	Reply(ctx context.Context, text string) string
}

// Geocoder resolves free text to the best ranked candidate.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (GeoResult, bool, error)
}

// WeatherFetcher returns the current observation at the given coordinates.
type WeatherFetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64) (WeatherSnapshot, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	weather  WeatherFetcher
	logger   *slog.Logger
}

// NewService wires up the advisory domain.
func NewService(cfg Config, geocoder Geocoder, weather WeatherFetcher, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		weather:  weather,
		logger:   logger.With("component", "advisory.service"),
	}
}

func (s *service) Advise(ctx context.Context, req Request) (Response, error) {
	query := strings.TrimSpace(req.Location)
	if query == "" {
		return Response{}, apperrors.Wrap(CodeInvalidInput, "location cannot be empty", nil)
	}

	s.logger.Debug("advisory stage", "stage", "resolving", "query", query)
	place, found, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		s.logger.Warn("geocoding failed", "stage", "resolving", "query", query, "error", err)
		return Response{}, apperrors.Wrap(CodeTemporaryFailure, "geocoding request failed", err)
	}
	if !found {
		return Response{}, apperrors.Wrap(CodeLocationNotFound, fmt.Sprintf("no place matches %q", query), nil)
	}

	s.logger.Debug("advisory stage", "stage", "validating", "query", query, "placeKind", place.PlaceKind)
	if !IsSettlement(place) {
		return Response{}, apperrors.Wrap(CodeNotASettlement, fmt.Sprintf("%q is not a populated place (kind %q)", query, place.PlaceKind), nil)
	}

	s.logger.Debug("advisory stage", "stage", "fetching", "lat", place.Latitude, "lon", place.Longitude)
	snapshot, err := s.weather.Fetch(ctx, place.Latitude, place.Longitude)
	if err != nil {
		if errors.Is(err, ErrIncompleteWeather) {
			s.logger.Warn("weather payload incomplete", "stage", "fetching", "query", query, "error", err)
			return Response{}, apperrors.Wrap(CodeWeatherUnavailable, "weather data unavailable", err)
		}
		s.logger.Warn("weather fetch failed", "stage", "fetching", "query", query, "error", err)
		return Response{}, apperrors.Wrap(CodeTemporaryFailure, "weather request failed", err)
	}

	condition := snapshot.Condition()
	hazards := condition.Category.Hazards()
	recommendation := Recommend(snapshot.TemperatureC, hazards, snapshot.UVIndex)

	res := Response{
		Query:          query,
		Place:          firstNonEmpty(place.DisplayName, query),
		Country:        place.Country,
		Region:         place.Region,
		PlaceKind:      place.PlaceKind,
		Latitude:       place.Latitude,
		Longitude:      place.Longitude,
		TemperatureC:   snapshot.TemperatureC,
		WindSpeedMps:   snapshot.WindSpeedMps,
		UVIndex:        snapshot.UVIndex,
		Condition:      condition.Category,
		ConditionText:  condition.Label(s.cfg.ShowIcons),
		Hazards:        hazards,
		Recommendation: recommendation,
	}
	if !snapshot.ObservedAt.IsZero() {
		res.ObservedAt = snapshot.ObservedAt.Format(time.RFC3339)
	}
	res.Text = s.compose(res, place, snapshot)
	s.logger.Info("advisory ready", "stage", "done", "query", query, "place", res.Place, "condition", res.Condition)
	return res, nil
}

func (s *service) Reply(ctx context.Context, text string) string {
	res, err := s.Advise(ctx, Request{Location: text})
	if err != nil {
		return MessageFor(err)
	}
	return res.Text
}

func (s *service) compose(res Response, place GeoResult, snapshot WeatherSnapshot) string {
	label := res.Place
	if place.Country != "" && place.Country != label {
		label = label + ", " + place.Country
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Текущая температура в \"%s\" составляет %.1f°C.\n", label, res.TemperatureC)
	if !snapshot.ObservedAt.IsZero() {
		fmt.Fprintf(&b, "Время наблюдения: %s.\n", snapshot.ObservedAt.Format("02.01.2006 15:04"))
	}
	fmt.Fprintf(&b, "Погодные условия: %s.\n", res.ConditionText)
	if snapshot.WindSpeedMps != nil {
		fmt.Fprintf(&b, "Ветер: %.1f м/с.\n", *snapshot.WindSpeedMps)
	}
	if snapshot.UVIndex != nil {
		fmt.Fprintf(&b, "УФ-индекс: %.1f.\n", *snapshot.UVIndex)
	}
	b.WriteString(res.Recommendation)
	return b.String()
}

var outcomeMessages = map[string]string{
	CodeInvalidInput:       "Введите название населенного пункта, чтобы узнать погоду.",
	CodeLocationNotFound:   "Населенный пункт не найден. Пожалуйста, проверьте ввод.",
	CodeNotASettlement:     "Пожалуйста, введите название населенного пункта.",
	CodeWeatherUnavailable: "Данные о погоде для этого места сейчас недоступны.",
	CodeTemporaryFailure:   "Ошибка при получении данных о погоде. Попробуйте позже.",
}

// MessageFor maps a failure to its stable user facing message.
// Errors without a known code are reported as temporary failures.
func MessageFor(err error) string {
	if msg, ok := outcomeMessages[apperrors.CodeOf(err)]; ok {
		return msg
	}
	return outcomeMessages[CodeTemporaryFailure]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
