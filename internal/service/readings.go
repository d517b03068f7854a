package service

import (
	"context"
	"errors"
	"fmt"

	"smarthub/internal/models"
	"smarthub/internal/repository"
)

const defaultGraphMaxSize = 1000

type ReadingService struct {
	settings repository.SettingsRepo
	readings repository.ReadingRepo
	opts     Options
}

func NewReadingService(settings repository.SettingsRepo, readings repository.ReadingRepo, opts Options) *ReadingService {
	return &ReadingService{settings: settings, readings: readings, opts: opts.withDefaults()}
}

// Ingest derives fan/light from the current settings, stamps the reading
// and appends it to the log.
func (s *ReadingService) Ingest(ctx context.Context, p ReadingParams) (models.Reading, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return models.Reading{}, err
	}
	if !st.Configured() {
		return models.Reading{}, ErrSettingsNotConfigured
	}

	now := s.opts.Now()
	act := Evaluate(st, p.Temperature, p.Presence, models.TimeOfDayOf(now.In(s.opts.Location)))

	r, err := s.readings.Append(ctx, models.Reading{
		Temperature: p.Temperature,
		Presence:    p.Presence,
		Fan:         act.Fan,
		Light:       act.Light,
		CurrentTime: now,
		Extra:       p.Extra,
	})
	if err != nil {
		return models.Reading{}, err
	}
	return s.local(r), nil
}

// local renders the stored instant as wall-clock time in the hub's zone.
func (s *ReadingService) local(r models.Reading) models.Reading {
	r.CurrentTime = r.CurrentTime.In(s.opts.Location)
	return r
}

// Graph returns at most size points, newest first. Sizes above the
// configured maximum are clamped.
func (s *ReadingService) Graph(ctx context.Context, size int) ([]models.GraphPoint, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be a positive integer", ErrValidation)
	}
	if size > s.opts.GraphMaxSize {
		size = s.opts.GraphMaxSize
	}

	rows, err := s.readings.Latest(ctx, size)
	if err != nil {
		return nil, err
	}
	out := make([]models.GraphPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.GraphPoint{
			Temperature: r.Temperature,
			Presence:    r.Presence,
			Datetime:    r.CurrentTime.In(s.opts.Location),
		})
	}
	return out, nil
}

func (s *ReadingService) Get(ctx context.Context, id int64) (models.Reading, error) {
	r, err := s.readings.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReadingNotFound) {
			return models.Reading{}, fmt.Errorf("%w: reading %d", ErrNotFound, id)
		}
		return models.Reading{}, err
	}
	return s.local(r), nil
}
