package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smarthub/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

const (
	insertReadingSQL = `
		INSERT INTO readings (temperature, presence, fan, light, recorded_at, extra)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectReadingColumns = `SELECT id, temperature, presence, fan, light, recorded_at, extra FROM readings`

	selectLatestReadingsSQL = selectReadingColumns + ` ORDER BY id DESC LIMIT ?`
	selectReadingByIDSQL    = selectReadingColumns + ` WHERE id = ?`
)

// marshalExtra converts extra fields to a JSON string, or NULL when empty.
func marshalExtra(extra map[string]any) (*string, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// unmarshalExtra parses the stored JSON object; malformed values are kept raw.
func unmarshalExtra(s sql.NullString) map[string]any {
	if !s.Valid || s.String == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return map[string]any{"raw": s.String}
	}
	return out
}

// Append stores a reading and returns it with its assigned id.
// A zero CurrentTime is stamped with now.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) (models.Reading, error) {
	if rd.CurrentTime.IsZero() {
		rd.CurrentTime = time.Now().UTC()
	} else {
		rd.CurrentTime = rd.CurrentTime.UTC()
	}

	extra, err := marshalExtra(rd.Extra)
	if err != nil {
		return models.Reading{}, fmt.Errorf("marshal reading extra: %w", err)
	}

	res, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.Temperature,
		rd.Presence,
		rd.Fan,
		rd.Light,
		rd.CurrentTime,
		extra,
	)
	if err != nil {
		return models.Reading{}, fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Reading{}, fmt.Errorf("get last insert id for reading: %w", err)
	}
	rd.ID = id
	return rd, nil
}

// Latest returns up to limit readings, newest first.
func (r *ReadingSQLite) Latest(ctx context.Context, limit int) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, selectLatestReadingsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select latest readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, limit)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches a single reading.
func (r *ReadingSQLite) ByID(ctx context.Context, id int64) (models.Reading, error) {
	rd, err := scanReading(r.db.QueryRowContext(ctx, selectReadingByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reading{}, ErrReadingNotFound
		}
		return models.Reading{}, err
	}
	return rd, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (models.Reading, error) {
	var (
		rd    models.Reading
		extra sql.NullString
	)
	if err := row.Scan(&rd.ID, &rd.Temperature, &rd.Presence, &rd.Fan, &rd.Light, &rd.CurrentTime, &extra); err != nil {
		return models.Reading{}, err
	}
	rd.CurrentTime = rd.CurrentTime.UTC()
	rd.Extra = unmarshalExtra(extra)
	return rd, nil
}
