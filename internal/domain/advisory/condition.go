package advisory

import "strings"

// Category is the provider independent weather vocabulary.
type Category string

const (
	CategoryClear        Category = "clear"
	CategoryPartlyCloudy Category = "partly_cloudy"
	CategoryCloudy       Category = "cloudy"
	CategoryFog          Category = "fog"
	CategoryDrizzle      Category = "drizzle"
	CategoryRain         Category = "rain"
	CategoryFreezingRain Category = "freezing_rain"
	CategorySnow         Category = "snow"
	CategorySnowGrains   Category = "snow_grains"
	CategoryRainShowers  Category = "rain_showers"
	CategorySnowShowers  Category = "snow_showers"
	CategoryThunderstorm Category = "thunderstorm"
	CategoryUnknown      Category = "unknown"
)

// Categories lists every member of the vocabulary, Unknown last.
func Categories() []Category {
	return []Category{
		CategoryClear,
		CategoryPartlyCloudy,
		CategoryCloudy,
		CategoryFog,
		CategoryDrizzle,
		CategoryRain,
		CategoryFreezingRain,
		CategorySnow,
		CategorySnowGrains,
		CategoryRainShowers,
		CategorySnowShowers,
		CategoryThunderstorm,
		CategoryUnknown,
	}
}

// Hazards are the advisory relevant flags derived from a category.
type Hazards struct {
	Precipitation bool `json:"precipitation"`
	Snow          bool `json:"snow"`
	Fog           bool `json:"fog"`
}

// Hazards derives the hazard flags for the category.
func (c Category) Hazards() Hazards {
	switch c {
	case CategoryDrizzle, CategoryRain, CategoryFreezingRain, CategoryRainShowers, CategoryThunderstorm:
		return Hazards{Precipitation: true}
	case CategorySnow, CategorySnowGrains, CategorySnowShowers:
		return Hazards{Snow: true}
	case CategoryFog:
		return Hazards{Fog: true}
	default:
		return Hazards{}
	}
}

// Localized is the user facing rendering of a category.
type Localized struct {
	Phrase  string
	Icon    string
	Hazards Hazards
}

type phrase struct {
	text string
	icon string
}

var categoryPhrases = map[Category]phrase{
	CategoryClear:        {"ясно", "☀️"},
	CategoryPartlyCloudy: {"переменная облачность", "⛅"},
	CategoryCloudy:       {"пасмурно", "☁️"},
	CategoryFog:          {"туман", "🌫️"},
	CategoryDrizzle:      {"морось", "🌦️"},
	CategoryRain:         {"дождь", "🌧️"},
	CategoryFreezingRain: {"ледяной дождь", "🌨️"},
	CategorySnow:         {"снегопад", "❄️"},
	CategorySnowGrains:   {"снежные зерна", "❄️"},
	CategoryRainShowers:  {"ливни", "🌧️"},
	CategorySnowShowers:  {"снегопады", "❄️"},
	CategoryThunderstorm: {"гроза", "⛈️"},
	CategoryUnknown:      {"неизвестные погодные условия", "❓"},
}

// Localize renders a category in the target language.
func Localize(c Category) Localized {
	p, ok := categoryPhrases[c]
	if !ok {
		c = CategoryUnknown
		p = categoryPhrases[CategoryUnknown]
	}
	return Localized{Phrase: p.text, Icon: p.icon, Hazards: c.Hazards()}
}

// Condition is a classified observation with the most specific phrase available.
type Condition struct {
	Category Category
	Phrase   string
	Icon     string
}

// Label joins phrase and icon; the icon is dropped when withIcon is false.
func (c Condition) Label(withIcon bool) string {
	if !withIcon || c.Icon == "" {
		return c.Phrase
	}
	return c.Phrase + " " + c.Icon
}

type wmoEntry struct {
	category Category
	phrase
}

// wmoCodes covers every code of the WMO 4677 subset used by Open-Meteo.
var wmoCodes = map[int]wmoEntry{
	0:  {CategoryClear, phrase{"ясное небо", "☀️"}},
	1:  {CategoryClear, phrase{"в основном ясно", "🌤️"}},
	2:  {CategoryPartlyCloudy, phrase{"переменная облачность", "⛅"}},
	3:  {CategoryCloudy, phrase{"пасмурно", "☁️"}},
	45: {CategoryFog, phrase{"туман", "🌫️"}},
	48: {CategoryFog, phrase{"туман с изморозью", "🌫️"}},
	51: {CategoryDrizzle, phrase{"морось, лёгкая", "🌦️"}},
	53: {CategoryDrizzle, phrase{"морось, умеренная", "🌧️"}},
	55: {CategoryDrizzle, phrase{"морось, густая", "🌧️"}},
	56: {CategoryFreezingRain, phrase{"ледяная морось, лёгкая", "🌨️"}},
	57: {CategoryFreezingRain, phrase{"ледяная морось, густая", "🌨️"}},
	61: {CategoryRain, phrase{"дождь, слабый", "🌧️"}},
	63: {CategoryRain, phrase{"дождь, умеренный", "🌧️"}},
	65: {CategoryRain, phrase{"дождь, сильный", "🌧️"}},
	66: {CategoryFreezingRain, phrase{"ледяной дождь, лёгкий", "🌨️"}},
	67: {CategoryFreezingRain, phrase{"ледяной дождь, сильный", "🌨️"}},
	71: {CategorySnow, phrase{"снегопад, слабый", "❄️"}},
	73: {CategorySnow, phrase{"снегопад, умеренный", "❄️"}},
	75: {CategorySnow, phrase{"снегопад, сильный", "❄️"}},
	77: {CategorySnowGrains, phrase{"снежные зерна", "❄️"}},
	80: {CategoryRainShowers, phrase{"ливни, слабые", "🌧️"}},
	81: {CategoryRainShowers, phrase{"ливни, умеренные", "🌧️"}},
	82: {CategoryRainShowers, phrase{"ливни, сильные", "🌧️"}},
	85: {CategorySnowShowers, phrase{"снегопады, слабые", "❄️"}},
	86: {CategorySnowShowers, phrase{"снегопады, сильные", "❄️"}},
	95: {CategoryThunderstorm, phrase{"гроза, слабая или умеренная", "⛈️"}},
	96: {CategoryThunderstorm, phrase{"гроза с градом, слабая", "⛈️"}},
	99: {CategoryThunderstorm, phrase{"гроза с градом, сильная", "⛈️"}},
}

// WMOCodes returns the documented weather codes in ascending order.
func WMOCodes() []int {
	return []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 99}
}

// Classify maps a WMO weather code to a category. Undocumented codes are Unknown.
func Classify(code int) Category {
	if entry, ok := wmoCodes[code]; ok {
		return entry.category
	}
	return CategoryUnknown
}

// Describe classifies a WMO code and keeps its intensity specific phrase.
func Describe(code int) Condition {
	entry, ok := wmoCodes[code]
	if !ok {
		return describeCategory(CategoryUnknown)
	}
	return Condition{Category: entry.category, Phrase: entry.text, Icon: entry.icon}
}

func describeCategory(c Category) Condition {
	loc := Localize(c)
	if _, ok := categoryPhrases[c]; !ok {
		c = CategoryUnknown
	}
	return Condition{Category: c, Phrase: loc.Phrase, Icon: loc.Icon}
}

// conditionNames accepts OpenWeatherMap "main" groups and the vocabulary itself.
var conditionNames = map[string]Category{
	"clear":        CategoryClear,
	"clouds":       CategoryCloudy,
	"mist":         CategoryFog,
	"fog":          CategoryFog,
	"haze":         CategoryFog,
	"smoke":        CategoryFog,
	"dust":         CategoryFog,
	"sand":         CategoryFog,
	"drizzle":      CategoryDrizzle,
	"rain":         CategoryRain,
	"snow":         CategorySnow,
	"thunderstorm": CategoryThunderstorm,
}

// ClassifyName maps a textual condition (case-insensitive) to a category.
func ClassifyName(name string) Category {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return CategoryUnknown
	}
	if c, ok := conditionNames[key]; ok {
		return c
	}
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, c := range Categories() {
		if string(c) == normalized || strings.ReplaceAll(string(c), "_", "") == normalized {
			return c
		}
	}
	return CategoryUnknown
}
