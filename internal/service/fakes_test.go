package service

import (
	"context"
	"testing"
	"time"

	"smarthub/internal/models"
	"smarthub/internal/repository"
)

// memSettingsRepo mimics the single-row upsert of SettingsSQLite.
type memSettingsRepo struct {
	row      *models.Settings
	inserts  int
	updates  int
	loadErr  error
	saveErr  error
	lastSave models.Settings
}

func (m *memSettingsRepo) Save(_ context.Context, s models.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.lastSave = s
	s.ID = 1
	if m.row == nil {
		m.inserts++
	} else {
		m.updates++
	}
	m.row = &s
	return nil
}

func (m *memSettingsRepo) Load(_ context.Context) (models.Settings, error) {
	if m.loadErr != nil {
		return models.Settings{}, m.loadErr
	}
	if m.row == nil {
		return models.Settings{}, nil
	}
	return *m.row, nil
}

func (m *memSettingsRepo) count() int {
	if m.row == nil {
		return 0
	}
	return 1
}

// memReadingRepo is an in-memory append-only log.
type memReadingRepo struct {
	rows      []models.Reading
	appendErr error
	latestErr error
}

func (m *memReadingRepo) Append(_ context.Context, r models.Reading) (models.Reading, error) {
	if m.appendErr != nil {
		return models.Reading{}, m.appendErr
	}
	r.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *memReadingRepo) Latest(_ context.Context, limit int) ([]models.Reading, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	out := make([]models.Reading, 0, limit)
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

func (m *memReadingRepo) ByID(_ context.Context, id int64) (models.Reading, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reading{}, repository.ErrReadingNotFound
}

type fakeSunset struct {
	at    models.TimeOfDay
	err   error
	calls int
}

func (f *fakeSunset) Today(context.Context) (models.TimeOfDay, error) {
	f.calls++
	return f.at, f.err
}

func tod(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
