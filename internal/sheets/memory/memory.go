// Package memory is an in-process RecordExporter for tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"maeum/internal/core"
	"maeum/internal/sheets"
)

type Exporter struct {
	mu   sync.Mutex
	rows map[string][]any
	refs map[string]string
}

var _ sheets.RecordExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{rows: map[string][]any{}, refs: map[string]string{}}
}

// Export stores the row for rec and returns a synthetic row reference that
// stays stable per date.
func (e *Exporter) Export(_ context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.refs[rec.Date]
	if !ok {
		ref = fmt.Sprintf("mem:%d", len(e.refs)+1)
		e.refs[rec.Date] = ref
	}
	e.rows[rec.Date] = sheets.RowFor(rec)
	return ref, nil
}

// Rows returns exported rows ordered by date.
func (e *Exporter) Rows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()

	dates := make([]string, 0, len(e.rows))
	for d := range e.rows {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([][]any, len(dates))
	for i, d := range dates {
		out[i] = append([]any(nil), e.rows[d]...)
	}
	return out
}
