package advisory

import "strings"

const (
	clauseHot      = "Жарко! Наденьте легкую одежду: шорты, футболку или платье."
	clauseWarm     = "На улице тепло! Подойдут джинсы и футболка, при желании легкая куртка."
	clauseCool     = "Прохладно. Наденьте свитер, куртку, джинсы."
	clauseCold     = "Холодно. Наденьте теплое пальто или куртку, при желании шапку."
	clauseFrost    = "Морозно. Наденьте зимнюю куртку, шапку, перчатки и шарф."
	clauseBitter   = "Сильный мороз! Наденьте самую теплую зимнюю одежду: пуховик, шапку, перчатки и шарф. Не задерживайтесь на улице."
	clauseUmbrella = "Возьмите зонт и наденьте непромокаемую обувь. ☔"
	clauseRoad     = "Осторожнее на дорогах! Не прибегайте к резкому торможению для избежания заноса."
	clauseFog      = "Будьте осторожны на дорогах из-за плохой видимости!"

	clauseUVLow      = "УФ-индекс низкий: особая защита от солнца не нужна."
	clauseUVModerate = "УФ-индекс умеренный: используйте солнцезащитный крем SPF 30+."
	clauseUVHigh     = "УФ-индекс высокий: используйте крем SPF 50+ и избегайте солнца в полдень."
	clauseUVVeryHigh = "УФ-индекс очень высокий: используйте крем SPF 50+, в полдень оставайтесь в тени."
	clauseUVExtreme  = "УФ-индекс экстремальный: избегайте пребывания на улице, используйте крем SPF 50+."
)

// Recommend builds clothing, hazard and UV guidance, one clause per line.
// A nil uvIndex omits the UV clause.
func Recommend(temperatureC float64, hazards Hazards, uvIndex *float64) string {
	clauses := []string{clothingFor(temperatureC)}
	if hazards.Precipitation {
		clauses = append(clauses, clauseUmbrella)
	}
	if hazards.Snow {
		clauses = append(clauses, clauseRoad)
	}
	if hazards.Fog {
		clauses = append(clauses, clauseFog)
	}
	if uvIndex != nil {
		clauses = append(clauses, uvClause(*uvIndex))
	}
	return strings.Join(clauses, "\n")
}

func clothingFor(t float64) string {
	switch {
	case t >= 25:
		return clauseHot
	case t >= 15:
		return clauseWarm
	case t >= 5:
		return clauseCool
	case t >= -5:
		return clauseCold
	case t >= -15:
		return clauseFrost
	default:
		return clauseBitter
	}
}

// UVCategory buckets a UV index using half-open WHO bands.
func UVCategory(uv float64) string {
	switch {
	case uv < 3:
		return "low"
	case uv < 6:
		return "moderate"
	case uv < 8:
		return "high"
	case uv < 11:
		return "very_high"
	default:
		return "extreme"
	}
}

func uvClause(uv float64) string {
	switch UVCategory(uv) {
	case "low":
		return clauseUVLow
	case "moderate":
		return clauseUVModerate
	case "high":
		return clauseUVHigh
	case "very_high":
		return clauseUVVeryHigh
	default:
		return clauseUVExtreme
	}
}
