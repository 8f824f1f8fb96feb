package weather

import (
	"context"
	"time"

	"maeum/internal/core"
	"maeum/internal/log"
)

// Source answers "today's weather" for a city, consulting the cache before
// the provider.
type Source struct {
	fetcher Fetcher
	cache   *FileCache
	now     func() time.Time
	logger  *log.Logger
}

func NewSource(fetcher Fetcher, cache *FileCache, logger *log.Logger) *Source {
	return &Source{
		fetcher: fetcher,
		cache:   cache,
		now:     time.Now,
		logger:  log.OrDiscard(logger).WithComponent(log.ComponentWeather),
	}
}

// Get returns today's report for city. With useCache a cached report is
// returned as is and a fetched one is stored. A failed cache write is logged
// and the fetched report still returned.
func (s *Source) Get(ctx context.Context, city, country string, useCache bool) (*core.WeatherReport, error) {
	key := CacheKey(city, country, core.FormatDate(s.now()))
	logger := s.logger.With(log.FieldCacheKey, key)

	if useCache && s.cache != nil {
		if r, ok := s.cache.Get(key); ok {
			logger.DebugContext(ctx, "Weather cache hit")
			return &r, nil
		}
	}

	report, err := s.fetcher.Current(ctx, city, country)
	logger.Op(ctx, log.OpFetch, err, log.FieldCity, city, log.FieldCountry, country)
	if err != nil {
		return nil, err
	}

	if useCache && s.cache != nil {
		if err := s.cache.Put(key, *report); err != nil {
			logger.WarnContext(ctx, "Cannot store weather in cache", log.FieldError, err)
		}
	}
	return report, nil
}

// Cached returns today's cached report without contacting the provider.
func (s *Source) Cached(city, country string) (*core.WeatherReport, bool) {
	if s.cache == nil {
		return nil, false
	}
	r, ok := s.cache.Get(CacheKey(city, country, core.FormatDate(s.now())))
	if !ok {
		return nil, false
	}
	return &r, true
}
