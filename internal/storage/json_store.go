package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"maeum/internal/core"
	"maeum/internal/log"
)

// JSONStore keeps every record in one JSON array file that is rewritten on
// each save. It holds no state between calls.
type JSONStore struct {
	path   string
	logger *log.Logger
}

// NewJSONStore returns a store backed by the file at path. The file and its
// directory are created on first use.
func NewJSONStore(path string, logger *log.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: log.OrDiscard(logger).WithComponent(log.ComponentStorage),
	}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load returns all records ordered as stored. A missing or empty file is
// initialised to an empty array; a file that does not parse is overwritten
// with an empty array. Load never fails.
func (s *JSONStore) Load(ctx context.Context) []core.Record {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.WarnContext(ctx, "Cannot create data directory", log.FieldPath, s.path, log.FieldError, err)
		return []core.Record{}
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist), err == nil && len(data) == 0:
		s.reset(ctx)
		return []core.Record{}
	case err != nil:
		s.logger.WarnContext(ctx, "Cannot read records file", log.FieldPath, s.path, log.FieldError, err)
		return []core.Record{}
	}

	var records []core.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.WarnContext(ctx, "Records file is corrupt, resetting to empty",
			log.FieldPath, s.path, log.FieldError, err)
		s.reset(ctx)
		return []core.Record{}
	}
	if records == nil {
		records = []core.Record{}
	}

	s.logger.DebugContext(ctx, "Records loaded", log.FieldPath, s.path, log.FieldCount, len(records))
	return records
}

// Upsert stores rec, replacing any record with the same date. When rec has no
// weather the replaced record's weather is kept. The whole list is written
// back sorted by date. The error reports a failed write only.
func (s *JSONStore) Upsert(ctx context.Context, rec core.Record) error {
	records := s.Load(ctx)

	replaced := false
	for i := range records {
		if records[i].Date == rec.Date {
			records[i] = core.MergeRecord(records[i], rec)
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	core.SortRecords(records)

	err := s.write(records)
	s.logger.Op(ctx, log.OpUpsert, err, log.FieldDate, rec.Date, log.FieldEmotion, rec.Emotion, "replaced", replaced)
	return err
}

func (s *JSONStore) reset(ctx context.Context) {
	err := s.write([]core.Record{})
	s.logger.Op(ctx, log.OpReset, err, log.FieldPath, s.path)
}

// write replaces the file with records as indented UTF-8 JSON.
func (s *JSONStore) write(records []core.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write records file: %w", err)
	}
	return nil
}

func encodeRecords(records []core.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}
