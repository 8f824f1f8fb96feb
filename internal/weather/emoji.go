package weather

// DefaultEmoji is shown for conditions missing from the table.
const DefaultEmoji = "🌡️"

var conditionEmoji = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
	"Dust":         "🌫️",
	"Sand":         "🌫️",
	"Ash":          "🌫️",
	"Squall":       "💨",
	"Tornado":      "🌪️",
}

// EmojiFor maps an OpenWeatherMap main category to an emoji.
func EmojiFor(main string) string {
	if e, ok := conditionEmoji[main]; ok {
		return e
	}
	return DefaultEmoji
}
