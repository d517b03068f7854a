package service

import (
	"context"
	"errors"
	"fmt"

	"smarthub/internal/models"
	"smarthub/internal/repository"
	"smarthub/internal/timespec"
)

type SettingsService struct {
	repo repository.SettingsRepo
	opts Options
}

func NewSettingsService(repo repository.SettingsRepo, opts Options) *SettingsService {
	return &SettingsService{repo: repo, opts: opts.withDefaults()}
}

// Update writes the settings slot (insert on first call, overwrite after)
// and returns the stored record.
func (s *SettingsService) Update(ctx context.Context, p SettingsParams) (models.Settings, error) {
	next, err := s.compute(ctx, p)
	if err != nil {
		return models.Settings{}, err
	}
	next.UpdatedAt = s.opts.Now().UTC()

	if err := s.repo.Save(ctx, next); err != nil {
		return models.Settings{}, err
	}
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if !stored.Configured() {
		return models.Settings{}, errors.New("settings missing after save")
	}
	return stored, nil
}

// Current returns the stored settings or ErrSettingsNotConfigured.
func (s *SettingsService) Current(ctx context.Context) (models.Settings, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if !st.Configured() {
		return models.Settings{}, ErrSettingsNotConfigured
	}
	return st, nil
}

func (s *SettingsService) compute(ctx context.Context, p SettingsParams) (models.Settings, error) {
	if p.UserLight == SunsetSentinel {
		at, err := s.sunset(ctx)
		if err != nil {
			return models.Settings{}, err
		}
		// The off-time is the sunset itself; light_duration is not applied on this path.
		return models.Settings{
			UserTemp:     p.UserTemp,
			UserLight:    at,
			LightTimeOff: at,
			LightSource:  models.LightSourceSunset,
		}, nil
	}

	on, err := models.ParseTimeOfDay(p.UserLight)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: user_light must be HH:MM:SS or %q", ErrValidation, SunsetSentinel)
	}
	d, err := timespec.Parse(p.LightDuration)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: light_duration %q: %w", ErrValidation, p.LightDuration, err)
	}
	return models.Settings{
		UserTemp:     p.UserTemp,
		UserLight:    on,
		LightTimeOff: on.Add(d),
		LightSource:  models.LightSourceTime,
	}, nil
}

func (s *SettingsService) sunset(ctx context.Context) (models.TimeOfDay, error) {
	if s.opts.Sunset == nil {
		return 0, fmt.Errorf("%w: no sunset source configured", ErrUpstream)
	}
	at, err := s.opts.Sunset.Today(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: resolve sunset: %w", ErrUpstream, err)
	}
	return at, nil
}
