package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smarthub/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	settingsRowID = 1

	upsertSettingsSQL = `
		INSERT INTO settings (id, user_temp, user_light, light_time_off, light_source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_temp=excluded.user_temp,
			user_light=excluded.user_light,
			light_time_off=excluded.light_time_off,
			light_source=excluded.light_source,
			updated_at=excluded.updated_at
	`

	selectSettingsSQL = `
		SELECT id, user_temp, user_light, light_time_off, light_source, updated_at
		FROM settings WHERE id=?
	`
)

// Save inserts the settings row on first write and overwrites every field afterwards.
func (r *SettingsSQLite) Save(ctx context.Context, s models.Settings) error {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	if _, err := r.db.ExecContext(ctx, upsertSettingsSQL,
		settingsRowID,
		s.UserTemp,
		s.UserLight,
		s.LightTimeOff,
		s.LightSource,
		ts,
	); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// Load fetches the settings row. A zero Settings (ID 0) means none was saved yet.
func (r *SettingsSQLite) Load(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.db.QueryRowContext(ctx, selectSettingsSQL, settingsRowID).Scan(
		&s.ID,
		&s.UserTemp,
		&s.UserLight,
		&s.LightTimeOff,
		&s.LightSource,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, nil
		}
		return models.Settings{}, fmt.Errorf("select settings: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}
