package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"maeum/internal/cache"
	"maeum/internal/core"
)

// CacheKey identifies one city's report for one day.
func CacheKey(city, country, date string) string {
	return fmt.Sprintf("%s_%s_%s", city, country, date)
}

// FileCache stores reports in a JSON object file keyed by CacheKey. Recent
// lookups are served from an in-process LRU.
type FileCache struct {
	path   string
	recent cache.Cache[string, core.WeatherReport]
}

func NewFileCache(path string, memSize int) *FileCache {
	return &FileCache{
		path:   path,
		recent: cache.NewLRU[string, core.WeatherReport](memSize),
	}
}

// Path returns the cache file.
func (c *FileCache) Path() string {
	return c.path
}

// Get returns the cached report for key.
func (c *FileCache) Get(key string) (core.WeatherReport, bool) {
	if r, ok := c.recent.Get(key); ok {
		return r, true
	}
	r, ok := c.load()[key]
	if ok {
		c.recent.Set(key, r)
	}
	return r, ok
}

// Put stores report under key and rewrites the file.
func (c *FileCache) Put(key string, report core.WeatherReport) error {
	entries := c.load()
	entries[key] = report
	c.recent.Set(key, report)

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create weather cache directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode weather cache: %w", err)
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write weather cache: %w", err)
	}
	return nil
}

// load reads the whole file; a missing or corrupt file is an empty cache.
func (c *FileCache) load() map[string]core.WeatherReport {
	entries := map[string]core.WeatherReport{}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return map[string]core.WeatherReport{}
	}
	return entries
}
