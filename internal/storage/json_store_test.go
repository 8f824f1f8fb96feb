package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"maeum/internal/core"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSONStore(filepath.Join(t.TempDir(), "data", "records.json"), nil)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestJSONStore_LoadInitialisesFile(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, path string)
	}{
		{
			name:    "missing file and directory",
			prepare: func(t *testing.T, path string) {},
		},
		{
			name: "zero-length file",
			prepare: func(t *testing.T, path string) {
				mustMkdir(t, filepath.Dir(path))
				mustWriteFile(t, path, "")
			},
		},
		{
			name: "malformed file",
			prepare: func(t *testing.T, path string) {
				mustMkdir(t, filepath.Dir(path))
				mustWriteFile(t, path, "{not json")
			},
		},
		{
			name: "object instead of array",
			prepare: func(t *testing.T, path string) {
				mustMkdir(t, filepath.Dir(path))
				mustWriteFile(t, path, `{"date":"2024-01-10"}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			tt.prepare(t, store.Path())

			got := store.Load(context.Background())
			if len(got) != 0 {
				t.Fatalf("Load() = %v, want empty", got)
			}
			if content := strings.TrimSpace(readFile(t, store.Path())); content != "[]" {
				t.Fatalf("file content = %q, want []", content)
			}
		})
	}
}

func TestJSONStore_LoadNullIsEmpty(t *testing.T) {
	store := newTestStore(t)
	mustMkdir(t, filepath.Dir(store.Path()))
	mustWriteFile(t, store.Path(), "null")

	if got := store.Load(context.Background()); got == nil || len(got) != 0 {
		t.Fatalf("Load() = %#v, want empty non-nil slice", got)
	}
}

func TestJSONStore_UpsertDistinctDatesSorted(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	later := record("2024-01-12", "슬픔", "rain")
	earlier := record("2024-01-10", "기쁨", "good day")
	if err := store.Upsert(ctx, later); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(ctx, earlier); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	assertRecords(t, []core.Record{earlier, later}, store.Load(ctx))
}

func TestJSONStore_UpsertReplacesSameDate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		first core.Record
		next  core.Record
		want  core.Record
	}{
		{
			name:  "weather carried forward",
			first: withWeather(record("2024-01-10", "기쁨", "morning"), sunny()),
			next:  record("2024-01-10", "평온", "evening"),
			want:  withWeather(record("2024-01-10", "평온", "evening"), sunny()),
		},
		{
			name:  "new weather wins",
			first: withWeather(record("2024-01-10", "기쁨", "morning"), sunny()),
			next:  withWeather(record("2024-01-10", "슬픔", "storm"), []byte(`{"emoji":"⛈️","temp":-1}`)),
			want:  withWeather(record("2024-01-10", "슬픔", "storm"), []byte(`{"emoji":"⛈️","temp":-1}`)),
		},
		{
			name:  "explicit null replaces weather",
			first: withWeather(record("2024-01-10", "기쁨", "morning"), sunny()),
			next:  withWeather(record("2024-01-10", "슬픔", "evening"), []byte(`null`)),
			want:  withWeather(record("2024-01-10", "슬픔", "evening"), []byte(`null`)),
		},
		{
			name:  "no weather on either side",
			first: record("2024-01-10", "기쁨", "morning"),
			next:  record("2024-01-10", "슬픔", "evening"),
			want:  record("2024-01-10", "슬픔", "evening"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			other := record("2024-01-11", "평온", "")
			for _, r := range []core.Record{tt.first, other, tt.next} {
				if err := store.Upsert(ctx, r); err != nil {
					t.Fatalf("Upsert: %v", err)
				}
			}
			assertRecords(t, []core.Record{tt.want, other}, store.Load(ctx))
		})
	}
}

func TestJSONStore_UpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	once := newTestStore(t)
	twice := newTestStore(t)
	e := withWeather(record("2024-03-01", "기쁨", "봄"), sunny())

	if err := once.Upsert(ctx, e); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := twice.Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	if a, b := readFile(t, once.Path()), readFile(t, twice.Path()); a != b {
		t.Fatalf("files differ:\n%s\n---\n%s", a, b)
	}
}

func TestJSONStore_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	entry := core.Record{Date: "2024-01-10", Note: "good day", Emotion: "기쁨", Color: "#FFD700"}

	if err := store.Upsert(ctx, entry); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	assertRecords(t, []core.Record{entry}, store.Load(ctx))

	content := readFile(t, store.Path())
	if strings.Contains(content, "weather") {
		t.Errorf("file should not carry a weather key:\n%s", content)
	}
	if !strings.Contains(content, `"emotion": "기쁨"`) {
		t.Errorf("file should hold unescaped, indented UTF-8:\n%s", content)
	}
}

func TestJSONStore_UpsertWriteFailure(t *testing.T) {
	store := newTestStore(t)
	// A directory in place of the file makes every read and write fail.
	mustMkdir(t, store.Path())

	if got := store.Load(context.Background()); len(got) != 0 {
		t.Fatalf("Load() = %v, want empty", got)
	}
	if err := store.Upsert(context.Background(), record("2024-01-10", "기쁨", "")); err == nil {
		t.Fatal("expected write error")
	}
}

func withWeather(r core.Record, w []byte) core.Record {
	r.Weather = w
	return r
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
