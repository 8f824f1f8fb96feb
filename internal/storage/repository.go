package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"maeum/internal/core"
	"maeum/internal/log"

	_ "modernc.org/sqlite"
)

const (
	selectRecordsSQL = `SELECT date, note, emotion, color, weather FROM records ORDER BY date ASC`

	upsertRecordSQL = `
INSERT INTO records (date, note, emotion, color, weather, updated_at)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(date) DO UPDATE SET
    note       = excluded.note,
    emotion    = excluded.emotion,
    color      = excluded.color,
    weather    = COALESCE(excluded.weather, records.weather),
    updated_at = excluded.updated_at`
)

// SQLiteRepository stores records in a SQLite table keyed by date. It follows
// the same Load/Upsert contract as JSONStore.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	logger = log.OrDiscard(logger).WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	logger.Op(context.Background(), log.OpMigrate, err, log.FieldPath, dbPath, "version", version)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns all records ordered by date. Query failures are logged and
// answered with an empty list.
func (r *SQLiteRepository) Load(ctx context.Context) []core.Record {
	records, err := r.list(ctx)
	r.logger.Op(ctx, log.OpLoad, err, log.FieldBackend, "sqlite", log.FieldCount, len(records))
	if err != nil {
		return []core.Record{}
	}
	return records
}

func (r *SQLiteRepository) list(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordsSQL)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []core.Record{}
	for rows.Next() {
		var (
			rec     core.Record
			weather sql.NullString
		)
		if err := rows.Scan(&rec.Date, &rec.Note, &rec.Emotion, &rec.Color, &weather); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if weather.Valid && weather.String != "" {
			rec.Weather = []byte(weather.String)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Upsert inserts rec or replaces the record with the same date, keeping the
// stored weather when rec has none.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec core.Record) error {
	var weather any
	if rec.WeatherSet() {
		weather = string(rec.Weather)
	}

	_, err := r.db.ExecContext(ctx, upsertRecordSQL, rec.Date, rec.Note, rec.Emotion, rec.Color, weather)
	if err != nil {
		err = fmt.Errorf("upsert record %s: %w", rec.Date, err)
	}
	r.logger.Op(ctx, log.OpUpsert, err, log.FieldBackend, "sqlite", log.FieldDate, rec.Date, log.FieldEmotion, rec.Emotion)
	return err
}
