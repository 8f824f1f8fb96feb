package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"maeum/internal/core"
	"maeum/internal/emotion"
)

type fakeStore struct {
	records   []core.Record
	upserts   []core.Record
	upsertErr error
}

func (f *fakeStore) Load(_ context.Context) []core.Record {
	return append([]core.Record(nil), f.records...)
}

func (f *fakeStore) Upsert(_ context.Context, rec core.Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, rec)
	for i := range f.records {
		if f.records[i].Date == rec.Date {
			f.records[i] = core.MergeRecord(f.records[i], rec)
			return nil
		}
	}
	f.records = append(f.records, rec)
	core.SortRecords(f.records)
	return nil
}

type fakeWeather struct {
	report *core.WeatherReport
	err    error
	calls  int
}

func (f *fakeWeather) Get(_ context.Context, _, _ string, _ bool) (*core.WeatherReport, error) {
	f.calls++
	return f.report, f.err
}

func (f *fakeWeather) Cached(_, _ string) (*core.WeatherReport, bool) {
	return f.report, f.report != nil
}

type fakePublisher struct {
	published []core.Record
	err       error
}

func (f *fakePublisher) PublishRecordSaved(_ context.Context, rec core.Record) error {
	f.published = append(f.published, rec)
	return f.err
}

var fixedNow = time.Date(2024, 5, 15, 9, 30, 0, 0, time.Local)

func newTestService(store *fakeStore, opts Options) *JournalService {
	opts.Now = func() time.Time { return fixedNow }
	return NewJournalService(store, emotion.Default(), opts)
}

func clearSky() *core.WeatherReport {
	return &core.WeatherReport{
		Date:        "2024-05-15",
		Main:        "Clear",
		Description: "clear sky",
		Temp:        21.4,
		FeelsLike:   20.9,
		Humidity:    40,
		Emoji:       "☀️",
	}
}

func TestRecordToday(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := newTestService(store, Options{Publisher: pub})

	rec, err := svc.RecordToday(context.Background(), "산책", "평온")
	if err != nil {
		t.Fatalf("RecordToday: %v", err)
	}

	want := core.Record{Date: "2024-05-15", Note: "산책", Emotion: "평온", Color: "#98FB98"}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Record{want}, store.records); diff != "" {
		t.Fatalf("stored records mismatch (-want +got):\n%s", diff)
	}
	if len(pub.published) != 1 || pub.published[0].Date != "2024-05-15" {
		t.Fatalf("expected one published record, got %+v", pub.published)
	}
}

func TestRecordTodayUnknownEmotion(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, Options{})

	_, err := svc.RecordToday(context.Background(), "", "무감정")
	if !errors.Is(err, core.ErrUnknownEmotion) {
		t.Fatalf("expected ErrUnknownEmotion, got %v", err)
	}
	if len(store.upserts) != 0 {
		t.Fatal("nothing should be stored for an unknown emotion")
	}
}

func TestRecordTodayAttachesWeather(t *testing.T) {
	store := &fakeStore{}
	weather := &fakeWeather{report: clearSky()}
	svc := newTestService(store, Options{Weather: weather})

	rec, err := svc.RecordToday(context.Background(), "", "기쁨")
	if err != nil {
		t.Fatalf("RecordToday: %v", err)
	}
	got, ok := rec.WeatherReport()
	if !ok {
		t.Fatal("expected weather on the record")
	}
	if diff := cmp.Diff(*clearSky(), got); diff != "" {
		t.Fatalf("weather mismatch (-want +got):\n%s", diff)
	}
	if weather.calls != 1 {
		t.Fatalf("expected one weather lookup, got %d", weather.calls)
	}
}

func TestRecordTodayWeatherFailureStillSaves(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, Options{Weather: &fakeWeather{err: errors.New("timeout")}})

	rec, err := svc.RecordToday(context.Background(), "", "슬픔")
	if err != nil {
		t.Fatalf("RecordToday: %v", err)
	}
	if rec.HasWeather() {
		t.Fatal("record should not carry weather")
	}
	if len(store.records) != 1 {
		t.Fatalf("expected record to be stored, got %d", len(store.records))
	}
}

func TestRecordTodayKeepsEarlierWeather(t *testing.T) {
	earlier := core.Record{Date: "2024-05-15", Note: "아침", Emotion: "지침", Color: "#CD853F"}
	earlier, _ = earlier.WithWeather(*clearSky())
	store := &fakeStore{records: []core.Record{earlier}}
	svc := newTestService(store, Options{})

	if _, err := svc.RecordToday(context.Background(), "저녁", "설렘"); err != nil {
		t.Fatalf("RecordToday: %v", err)
	}
	stored, ok := svc.TodayRecord(context.Background())
	if !ok {
		t.Fatal("today's record missing")
	}
	if stored.Emotion != "설렘" || stored.Note != "저녁" {
		t.Fatalf("record not replaced: %+v", stored)
	}
	if !stored.HasWeather() {
		t.Fatal("earlier weather should be carried forward")
	}
}

func TestRecordTodayPublishesStoredRecord(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := newTestService(store, Options{Publisher: pub})
	ctx := context.Background()

	if _, err := svc.RecordToday(ctx, "아침", "지침"); err != nil {
		t.Fatalf("RecordToday: %v", err)
	}
	if ok, err := svc.AttachWeather(ctx, "2024-05-15", *clearSky()); err != nil || !ok {
		t.Fatalf("AttachWeather = %v, %v", ok, err)
	}
	rec, err := svc.RecordToday(ctx, "저녁", "설렘")
	if err != nil {
		t.Fatalf("RecordToday: %v", err)
	}

	if len(pub.published) != 3 {
		t.Fatalf("expected 3 published records, got %d", len(pub.published))
	}
	last := pub.published[2]
	if diff := cmp.Diff(store.records[0], last); diff != "" {
		t.Fatalf("published record differs from stored (-stored +published):\n%s", diff)
	}
	if diff := cmp.Diff(store.records[0], rec); diff != "" {
		t.Fatalf("returned record differs from stored (-stored +returned):\n%s", diff)
	}
	got, ok := last.WeatherReport()
	if !ok || got.Main != "Clear" {
		t.Fatalf("published record lost the carried-forward weather: %+v", last)
	}
	if last.Note != "저녁" || last.Emotion != "설렘" {
		t.Fatalf("published record not updated: %+v", last)
	}
}

func TestRecordTodayStoreFailure(t *testing.T) {
	pub := &fakePublisher{}
	svc := newTestService(&fakeStore{upsertErr: errors.New("disk full")}, Options{Publisher: pub})

	if _, err := svc.RecordToday(context.Background(), "", "화남"); err == nil {
		t.Fatal("expected store error")
	}
	if len(pub.published) != 0 {
		t.Fatal("failed saves must not be published")
	}
}

func TestRecordTodayPublishFailureIsIgnored(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, Options{Publisher: &fakePublisher{err: errors.New("broker down")}})

	if _, err := svc.RecordToday(context.Background(), "", "불안"); err != nil {
		t.Fatalf("publish failure should not surface: %v", err)
	}
	if len(store.records) != 1 {
		t.Fatal("record should be stored")
	}
}

func TestAttachWeather(t *testing.T) {
	store := &fakeStore{records: []core.Record{{Date: "2024-05-15", Note: "n", Emotion: "기쁨", Color: "#FFD700"}}}
	svc := newTestService(store, Options{})

	ok, err := svc.AttachWeather(context.Background(), "2024-05-15", *clearSky())
	if err != nil || !ok {
		t.Fatalf("AttachWeather = %v, %v", ok, err)
	}
	got, _ := store.records[0].WeatherReport()
	if got.Main != "Clear" {
		t.Fatalf("weather not attached: %+v", got)
	}

	ok, err = svc.AttachWeather(context.Background(), "2024-05-14", *clearSky())
	if err != nil || ok {
		t.Fatalf("AttachWeather for a missing day = %v, %v", ok, err)
	}
}

func TestCurrentWeatherWithoutSource(t *testing.T) {
	svc := newTestService(&fakeStore{}, Options{})
	if svc.WeatherEnabled() {
		t.Fatal("weather should be disabled")
	}
	if svc.CurrentWeather(context.Background(), "Seoul", "kr") != nil {
		t.Fatal("expected no report")
	}
	if svc.CachedWeather() != nil {
		t.Fatal("expected no cached report")
	}
}

func TestCachedWeather(t *testing.T) {
	weather := &fakeWeather{report: clearSky()}
	svc := newTestService(&fakeStore{}, Options{Weather: weather})

	if got := svc.CachedWeather(); got == nil || got.Main != "Clear" {
		t.Fatalf("CachedWeather = %+v", got)
	}
	if weather.calls != 0 {
		t.Fatal("cached lookup must not fetch")
	}
}

func TestSummaries(t *testing.T) {
	store := &fakeStore{records: []core.Record{
		{Date: "2024-04-30", Emotion: "슬픔", Color: "#1E90FF"},
		{Date: "2024-05-13", Emotion: "기쁨", Color: "#FFD700"},
		{Date: "2024-05-15", Emotion: "기쁨", Color: "#FFD700"},
		{Date: "2024-05-20", Emotion: "사라진감정", Color: "#123456"},
	}}
	svc := newTestService(store, Options{})
	ctx := context.Background()

	week := svc.Weekly(ctx)
	if week.Days[0].Record == nil || week.Days[2].Record == nil || week.Days[1].Record != nil {
		t.Fatalf("unexpected week: %+v", week.Days)
	}

	view, err := svc.Monthly(ctx, 2024, 5)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if len(view.Records) != 3 {
		t.Fatalf("expected 3 May records, got %d", len(view.Records))
	}
	if _, err := svc.Monthly(ctx, 2024, 13); !errors.Is(err, core.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}

	if got := len(svc.Timeline(ctx, core.PeriodAll)); got != 4 {
		t.Fatalf("all timeline = %d records", got)
	}
	if got := len(svc.Timeline(ctx, core.PeriodWeek)); got != 2 {
		t.Fatalf("week timeline = %d records", got)
	}

	dist := svc.Distribution(ctx)
	want := []core.EmotionCount{
		{Emotion: "슬픔", Color: "#1E90FF", Count: 1, Percent: 25},
		{Emotion: "기쁨", Color: "#FFD700", Count: 2, Percent: 50},
		{Emotion: "사라진감정", Color: core.FallbackColor, Count: 1, Percent: 25},
	}
	if diff := cmp.Diff(want, dist); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
}
