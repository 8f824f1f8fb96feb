// Package sheets defines the export port records are mirrored through and
// the row layout shared by its adapters.
package sheets

import (
	"context"

	"maeum/internal/core"
	"maeum/internal/weather"
)

// RecordExporter writes one row per record date, replacing the row of an
// already exported date.
type RecordExporter interface {
	Export(ctx context.Context, rec core.Record) (rowRef string, err error)
}

// Header is the first row of an export sheet.
var Header = []any{"date", "emotion", "color", "note", "weather"}

// RowFor renders rec in Header column order.
func RowFor(rec core.Record) []any {
	summary := ""
	if report, ok := rec.WeatherReport(); ok {
		summary = weather.Summary(&report)
	}
	return []any{rec.Date, rec.Emotion, rec.Color, rec.Note, summary}
}
