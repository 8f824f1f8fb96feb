package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DateLayout is the storage format of a record date. Zero-padded, so lexical
// order equals chronological order.
const DateLayout = "2006-01-02"

type (
	// Record is one day's journal entry.
	Record struct {
		Date    string          `json:"date"`
		Note    string          `json:"note"`
		Emotion string          `json:"emotion"`
		Color   string          `json:"color"`
		Weather json.RawMessage `json:"weather,omitempty"`
	}

	// WeatherReport is the typed view of a record's weather blob.
	WeatherReport struct {
		Date        string  `json:"date"`
		Main        string  `json:"weather"`
		Description string  `json:"description"`
		Temp        float64 `json:"temp"`
		FeelsLike   float64 `json:"feels_like"`
		Humidity    int     `json:"humidity"`
		Emoji       string  `json:"emoji"`
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidYear    = errors.New("invalid year")
	ErrEmptyEmotion   = errors.New("empty emotion")
	ErrUnknownEmotion = errors.New("unknown emotion")
)

// FormatDate renders t in the storage date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a storage date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (r Record) Validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	if strings.TrimSpace(r.Emotion) == "" {
		return ErrEmptyEmotion
	}
	return nil
}

// HasWeather reports whether the record carries a weather blob.
func (r Record) HasWeather() bool {
	w := strings.TrimSpace(string(r.Weather))
	return w != "" && w != "null"
}

// WeatherSet reports whether the weather key was written at all, even as
// null. Carry-forward only applies when it was not.
func (r Record) WeatherSet() bool {
	return len(r.Weather) > 0
}

// WeatherReport decodes the weather blob. Fields the blob does not carry are
// left zero; ok is false when there is no blob or it is not an object.
func (r Record) WeatherReport() (WeatherReport, bool) {
	var w WeatherReport
	if !r.HasWeather() {
		return w, false
	}
	if err := json.Unmarshal(r.Weather, &w); err != nil {
		return WeatherReport{}, false
	}
	return w, true
}

// WithWeather returns a copy of r carrying report as its weather blob.
func (r Record) WithWeather(report WeatherReport) (Record, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return r, err
	}
	r.Weather = raw
	return r, nil
}

// MergeRecord returns next as the replacement of prev. The weather blob of
// prev survives when next has no weather key; an explicit null replaces it.
func MergeRecord(prev, next Record) Record {
	if !next.WeatherSet() && prev.WeatherSet() {
		next.Weather = append(json.RawMessage(nil), prev.Weather...)
	}
	return next
}

// ValidateYearMonth checks a free-form year and month before a monthly view.
func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}
