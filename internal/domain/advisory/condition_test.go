package advisory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDocumentedCodes(t *testing.T) {
	for _, code := range WMOCodes() {
		require.NotEqual(t, CategoryUnknown, Classify(code), "code %d", code)
	}
	require.Len(t, wmoCodes, len(WMOCodes()))
}

func TestClassifyUndocumentedCodes(t *testing.T) {
	documented := make(map[int]struct{})
	for _, code := range WMOCodes() {
		documented[code] = struct{}{}
	}
	for code := -10; code <= 200; code++ {
		if _, ok := documented[code]; ok {
			continue
		}
		require.Equal(t, CategoryUnknown, Classify(code), "code %d", code)
	}
}

func TestClassifyTable(t *testing.T) {
	cases := map[int]Category{
		0:  CategoryClear,
		1:  CategoryClear,
		2:  CategoryPartlyCloudy,
		3:  CategoryCloudy,
		48: CategoryFog,
		55: CategoryDrizzle,
		57: CategoryFreezingRain,
		63: CategoryRain,
		67: CategoryFreezingRain,
		75: CategorySnow,
		77: CategorySnowGrains,
		81: CategoryRainShowers,
		86: CategorySnowShowers,
		99: CategoryThunderstorm,
	}
	for code, want := range cases {
		require.Equal(t, want, Classify(code), "code %d", code)
	}
}

func TestHazardsPerCategory(t *testing.T) {
	precipitation := []Category{CategoryDrizzle, CategoryRain, CategoryFreezingRain, CategoryRainShowers, CategoryThunderstorm}
	snow := []Category{CategorySnow, CategorySnowGrains, CategorySnowShowers}
	for _, c := range precipitation {
		require.Equal(t, Hazards{Precipitation: true}, c.Hazards(), c)
	}
	for _, c := range snow {
		require.Equal(t, Hazards{Snow: true}, c.Hazards(), c)
	}
	require.Equal(t, Hazards{Fog: true}, CategoryFog.Hazards())
	require.Equal(t, Hazards{}, CategoryClear.Hazards())
	require.Equal(t, Hazards{}, CategoryUnknown.Hazards())
}

func TestLocalizeEveryCategory(t *testing.T) {
	for _, c := range Categories() {
		loc := Localize(c)
		require.NotEmpty(t, loc.Phrase, c)
		require.NotEmpty(t, loc.Icon, c)
		require.Equal(t, c.Hazards(), loc.Hazards)
	}
	require.Equal(t, Localize(CategoryUnknown), Localize(Category("sandstorm")))
}

func TestClassifyName(t *testing.T) {
	cases := map[string]Category{
		"Rain":          CategoryRain,
		"SNOW":          CategorySnow,
		" Thunderstorm": CategoryThunderstorm,
		"Clouds":        CategoryCloudy,
		"Mist":          CategoryFog,
		"PartlyCloudy":  CategoryPartlyCloudy,
		"freezing_rain": CategoryFreezingRain,
		"rain showers":  CategoryRainShowers,
		"Tornado":       CategoryUnknown,
		"":              CategoryUnknown,
	}
	for name, want := range cases {
		require.Equal(t, want, ClassifyName(name), "name %q", name)
	}
}

func TestDescribeKeepsIntensity(t *testing.T) {
	cond := Describe(65)
	require.Equal(t, CategoryRain, cond.Category)
	require.Equal(t, "дождь, сильный", cond.Phrase)
	require.Equal(t, "дождь, сильный 🌧️", cond.Label(true))
	require.Equal(t, "дождь, сильный", cond.Label(false))

	unknown := Describe(42)
	require.Equal(t, CategoryUnknown, unknown.Category)
	require.Equal(t, "неизвестные погодные условия", unknown.Phrase)
}

func TestSnapshotConditionPrefersName(t *testing.T) {
	snap := WeatherSnapshot{WeatherCode: 0, ConditionName: "Snow"}
	require.Equal(t, CategorySnow, snap.Condition().Category)
	require.Equal(t, "снегопад", snap.Condition().Phrase)

	snap = WeatherSnapshot{WeatherCode: 95}
	require.Equal(t, CategoryThunderstorm, snap.Condition().Category)
}
