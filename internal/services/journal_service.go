package services

import (
	"context"
	"fmt"
	"time"

	"maeum/internal/backend"
	"maeum/internal/core"
	"maeum/internal/emotion"
	"maeum/internal/log"
)

// RecordPublisher announces saved records to the export pipeline.
type RecordPublisher interface {
	PublishRecordSaved(ctx context.Context, rec core.Record) error
}

// WeatherSource provides today's weather for a city.
type WeatherSource interface {
	Get(ctx context.Context, city, country string, useCache bool) (*core.WeatherReport, error)
	Cached(city, country string) (*core.WeatherReport, bool)
}

// Options carries the optional collaborators of a JournalService. A nil
// Weather or Publisher disables that capability.
type Options struct {
	Weather   WeatherSource
	Publisher RecordPublisher
	City      string
	Country   string
	Logger    *log.Logger
	Now       func() time.Time
}

// JournalService orchestrates journal operations across the record store,
// the weather source and the export publisher. Only the store is required.
type JournalService struct {
	store     backend.Store
	catalog   emotion.Catalog
	weather   WeatherSource
	publisher RecordPublisher
	city      string
	country   string
	now       func() time.Time
	logger    *log.Logger
}

func NewJournalService(store backend.Store, catalog emotion.Catalog, opts Options) *JournalService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	city, country := opts.City, opts.Country
	if city == "" {
		city = "Seoul"
	}
	if country == "" {
		country = "kr"
	}
	return &JournalService{
		store:     store,
		catalog:   catalog,
		weather:   opts.Weather,
		publisher: opts.Publisher,
		city:      city,
		country:   country,
		now:       now,
		logger:    log.OrDiscard(opts.Logger).WithComponent(log.ComponentJournal),
	}
}

// Catalog returns the emotion catalog records are checked against.
func (s *JournalService) Catalog() emotion.Catalog {
	return s.catalog
}

// Today returns the current local time.
func (s *JournalService) Today() time.Time {
	return s.now()
}

// WeatherEnabled reports whether a weather source is configured.
func (s *JournalService) WeatherEnabled() bool {
	return s.weather != nil
}

// Location returns the default weather city and country code.
func (s *JournalService) Location() (string, string) {
	return s.city, s.country
}

// RecordToday saves today's note and emotion, attaching today's weather when
// available. The returned record is the stored one, so it carries an earlier
// weather blob for the day when no new weather was attached.
func (s *JournalService) RecordToday(ctx context.Context, note, emotionName string) (core.Record, error) {
	color, ok := s.catalog.Color(emotionName)
	if !ok {
		return core.Record{}, fmt.Errorf("%w: %q", core.ErrUnknownEmotion, emotionName)
	}

	rec := core.Record{
		Date:    core.FormatDate(s.now()),
		Note:    note,
		Emotion: emotionName,
		Color:   color,
	}

	if report := s.CurrentWeather(ctx, s.city, s.country); report != nil {
		if withWeather, err := rec.WithWeather(*report); err == nil {
			rec = withWeather
		}
	}

	return s.save(ctx, rec)
}

// CurrentWeather returns today's weather for city, or nil when the
// capability is absent or the lookup failed.
func (s *JournalService) CurrentWeather(ctx context.Context, city, country string) *core.WeatherReport {
	if s.weather == nil {
		return nil
	}
	report, err := s.weather.Get(ctx, city, country, true)
	if err != nil {
		s.logger.WarnContext(ctx, "Weather unavailable",
			log.NewFields().WithLocation(city, country).WithError(err).ToSlice()...)
		return nil
	}
	return report
}

// CachedWeather returns today's cached report for the default city without
// touching the network.
func (s *JournalService) CachedWeather() *core.WeatherReport {
	if s.weather == nil {
		return nil
	}
	report, ok := s.weather.Cached(s.city, s.country)
	if !ok {
		return nil
	}
	return report
}

// AttachWeather stores report on the record written on date. It returns
// false when no such record exists.
func (s *JournalService) AttachWeather(ctx context.Context, date string, report core.WeatherReport) (bool, error) {
	rec, ok := core.FindRecord(s.store.Load(ctx), date)
	if !ok {
		return false, nil
	}

	rec, err := rec.WithWeather(report)
	if err != nil {
		return false, fmt.Errorf("encode weather: %w", err)
	}
	if _, err := s.save(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// save writes rec and publishes a record-saved event for the stored record,
// which may differ from rec after weather carry-forward. Publishing is best
// effort: the record is already stored locally.
func (s *JournalService) save(ctx context.Context, rec core.Record) (core.Record, error) {
	if err := s.store.Upsert(ctx, rec); err != nil {
		return rec, fmt.Errorf("save record: %w", err)
	}
	if stored, ok := core.FindRecord(s.store.Load(ctx), rec.Date); ok {
		rec = stored
	}

	if s.publisher == nil {
		s.logger.DebugContext(ctx, "No publisher configured, skipping record saved event", log.FieldDate, rec.Date)
		return rec, nil
	}
	err := s.publisher.PublishRecordSaved(ctx, rec)
	s.logger.Op(ctx, log.OpPublish, err, log.FieldDate, rec.Date)
	return rec, nil
}

// Records returns every stored record ordered by date.
func (s *JournalService) Records(ctx context.Context) []core.Record {
	return s.store.Load(ctx)
}

// TodayRecord returns the record written today, if any.
func (s *JournalService) TodayRecord(ctx context.Context) (core.Record, bool) {
	return core.FindRecord(s.store.Load(ctx), core.FormatDate(s.now()))
}

// Weekly returns the Monday-start week containing today.
func (s *JournalService) Weekly(ctx context.Context) core.Week {
	return core.Weekly(s.store.Load(ctx), s.now())
}

// Monthly returns the calendar view of year and month.
func (s *JournalService) Monthly(ctx context.Context, year, month int) (core.MonthView, error) {
	if err := core.ValidateYearMonth(year, month); err != nil {
		return core.MonthView{}, err
	}
	view := core.Monthly(s.store.Load(ctx), year, month)
	s.logger.DebugContext(ctx, "Monthly view built",
		log.FieldYear, year, log.FieldMonth, month, log.FieldCount, len(view.Records))
	return view, nil
}

// Timeline returns the records of period, relative to today.
func (s *JournalService) Timeline(ctx context.Context, period core.Period) []core.Record {
	return core.Timeline(s.store.Load(ctx), period, s.now())
}

// Distribution counts stored records per emotion.
func (s *JournalService) Distribution(ctx context.Context) []core.EmotionCount {
	return core.Distribution(s.store.Load(ctx), s.catalog.Color)
}
