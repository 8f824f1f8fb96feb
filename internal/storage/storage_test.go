package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"maeum/internal/core"
)

// equateJSON compares weather blobs by content; stores may re-indent them.
var equateJSON = cmp.Comparer(func(a, b json.RawMessage) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
})

func sunny() json.RawMessage {
	return json.RawMessage(`{"date":"2024-01-10","weather":"Clear","description":"맑음","temp":3.5,"feels_like":1.2,"humidity":40,"emoji":"☀️"}`)
}

func record(date, emotion, note string) core.Record {
	colors := map[string]string{"기쁨": "#FFD700", "슬픔": "#1E90FF", "평온": "#98FB98"}
	return core.Record{Date: date, Note: note, Emotion: emotion, Color: colors[emotion]}
}

func assertRecords(t *testing.T, want, got []core.Record) {
	t.Helper()
	if diff := cmp.Diff(want, got, equateJSON); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}
