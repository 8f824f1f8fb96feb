package weather

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"maeum/internal/core"
)

// NoWeather is the summary of a missing report.
const NoWeather = "날씨 정보 없음"

// Summary renders a report as "{emoji} {Description} {temp}°C".
func Summary(r *core.WeatherReport) string {
	if r == nil {
		return NoWeather
	}
	return fmt.Sprintf("%s %s %.1f°C", r.Emoji, Capitalize(r.Description), r.Temp)
}

// Details renders the temperature, feels-like and humidity line.
func Details(r *core.WeatherReport) string {
	if r == nil {
		return NoWeather
	}
	return fmt.Sprintf("온도: %.1f°C (체감: %.1f°C) · 습도: %d%%", r.Temp, r.FeelsLike, r.Humidity)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
