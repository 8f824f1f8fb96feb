// Package google exports records to a Google Sheet, one row per date.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"maeum/internal/cache"
	"maeum/internal/core"
	"maeum/internal/log"
	ports "maeum/internal/sheets"
)

const rowCacheTTL = 10 * time.Minute

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger

	// mu serializes exports; a new row is placed after the last used one.
	mu sync.Mutex
	// rows remembers the sheet row of recently exported dates.
	rows cache.Cache[string, int]
}

var _ ports.RecordExporter = (*Client)(nil)

// Options selects the target sheet and the service account credentials.
// CredentialsJSON wins over CredentialsFile; with neither set
// GOOGLE_APPLICATION_CREDENTIALS is read.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	creds, err := credentials(opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewWithService(svc, opts.SpreadsheetID, opts.SheetName, logger), nil
}

// NewWithService wraps an existing service, letting tests point the client
// at a fake endpoint.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetName string, logger *log.Logger) *Client {
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Records"
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        log.OrDiscard(logger).WithComponent(log.ComponentSheets),
		rows:          cache.NewLRU[string, int](512, cache.WithTTL(rowCacheTTL)),
	}
}

func credentials(opts Options) ([]byte, error) {
	if js := strings.TrimSpace(opts.CredentialsJSON); js != "" {
		return []byte(js), nil
	}

	path := strings.TrimSpace(opts.CredentialsFile)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if path == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

// Export writes rec to the row holding its date, or to the first free row.
// An empty sheet gets the header row first.
func (c *Client) Export(ctx context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.rows.Get(rec.Date)
	values := [][]any{ports.RowFor(rec)}
	if !ok {
		rng := fmt.Sprintf("%s!A:A", c.sheetName)
		resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("read dates from %s: %w", c.sheetName, err)
		}

		row = findRow(resp.Values, rec.Date)
		if row == 0 {
			row = len(resp.Values) + 1
			if row == 1 {
				values = [][]any{ports.Header, ports.RowFor(rec)}
			}
		}
	}

	start := row
	if len(values) == 2 {
		row = 2
	}
	ref := rowRange(c.sheetName, start, row)

	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ref, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		c.rows.Delete(rec.Date)
		return "", fmt.Errorf("update %s: %w", ref, err)
	}
	c.rows.Set(rec.Date, row)

	c.logger.InfoContext(ctx, "Record exported",
		log.FieldDate, rec.Date,
		log.FieldRowRef, ref,
		"cached_row", ok)
	return rowRange(c.sheetName, row, row), nil
}

// findRow returns the 1-based row whose first cell equals date, or 0.
func findRow(values [][]any, date string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == date {
			return i + 1
		}
	}
	return 0
}

func rowRange(sheet string, from, to int) string {
	return fmt.Sprintf("%s!A%d:E%d", sheet, from, to)
}
