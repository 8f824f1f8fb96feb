// Package emotion holds the emotion catalog: the ordered set of emotions a
// record may carry, their display colors and their emoji.
package emotion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"maeum/internal/log"
)

// Emotion is one catalog entry.
type Emotion struct {
	Name  string
	Color string
}

// Catalog is an ordered, read-only emotion -> color mapping. The zero value
// is an empty catalog.
type Catalog struct {
	entries []Emotion
	index   map[string]int
}

var defaultEntries = []Emotion{
	{"기쁨", "#FFD700"},
	{"슬픔", "#1E90FF"},
	{"화남", "#DC143C"},
	{"불안", "#8A2BE2"},
	{"공허함", "#A9A9A9"},
	{"평온", "#98FB98"},
	{"지침", "#CD853F"},
	{"설렘", "#FF69B4"},
}

var errEmptyCatalog = errors.New("emotion map is empty")

// New builds a catalog from entries. A repeated name keeps its first
// position and takes the later color.
func New(entries []Emotion) Catalog {
	c := Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, ok := c.index[e.Name]; ok {
			c.entries[i].Color = e.Color
			continue
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Default returns the built-in 8-emotion catalog.
func Default() Catalog {
	return New(defaultEntries)
}

// Load reads the emotion map at path. Any problem with the file is logged
// and answered with the default catalog.
func Load(path string, logger *log.Logger) Catalog {
	logger = log.OrDiscard(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Emotion map unavailable, using defaults", log.FieldPath, path, log.FieldError, err)
		return Default()
	}

	entries, err := parse(data)
	if err != nil {
		logger.Warn("Emotion map unreadable, using defaults", log.FieldPath, path, log.FieldError, err)
		return Default()
	}

	c := New(entries)
	logger.Debug("Emotion map loaded", log.FieldPath, path, log.FieldCount, c.Len())
	return c
}

// parse decodes a JSON object of name -> color keeping key order.
func parse(data []byte) ([]Emotion, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read emotion map: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("emotion map must be a JSON object")
	}

	var entries []Emotion
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read emotion name: %w", err)
		}
		name, _ := keyTok.(string)

		var color string
		if err := dec.Decode(&color); err != nil {
			return nil, fmt.Errorf("read color of %q: %w", name, err)
		}
		entries = append(entries, Emotion{Name: name, Color: color})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("close emotion map: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after emotion map")
	}
	if len(entries) == 0 {
		return nil, errEmptyCatalog
	}
	return entries, nil
}

// Len returns the number of emotions.
func (c Catalog) Len() int {
	return len(c.entries)
}

// Names returns emotion names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the catalog entries.
func (c Catalog) Entries() []Emotion {
	return append([]Emotion(nil), c.entries...)
}

// Color returns the display color of an emotion.
func (c Catalog) Color(name string) (string, bool) {
	i, ok := c.index[name]
	if !ok {
		return "", false
	}
	return c.entries[i].Color, true
}

// Has reports whether name is in the catalog.
func (c Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// At returns the emotion at a 1-based menu position.
func (c Catalog) At(choice int) (Emotion, bool) {
	if choice < 1 || choice > len(c.entries) {
		return Emotion{}, false
	}
	return c.entries[choice-1], true
}
