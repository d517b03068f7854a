package service

import (
	"context"
	"errors"
	"time"

	"smarthub/internal/models"
	"smarthub/internal/repository"
)

// Error classes the HTTP layer maps onto status codes.
var (
	ErrValidation            = errors.New("validation failed")
	ErrSettingsNotConfigured = errors.New("settings not configured")
	ErrNotFound              = errors.New("not found")
	ErrUpstream              = errors.New("upstream service unavailable")
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Settings owns the single current settings record.
type Settings interface {
	Update(ctx context.Context, p SettingsParams) (models.Settings, error)
	Current(ctx context.Context) (models.Settings, error)
}

// Readings ingests sensor samples and serves their history.
type Readings interface {
	Ingest(ctx context.Context, p ReadingParams) (models.Reading, error)
	Graph(ctx context.Context, size int) ([]models.GraphPoint, error)
	Get(ctx context.Context, id int64) (models.Reading, error)
}

// Monitoring exposes the latest derived state.
type Monitoring interface {
	GetState(ctx context.Context) (models.State, error)
}

// SunsetSource resolves today's sunset for the hub's fixed location.
type SunsetSource interface {
	Today(ctx context.Context) (models.TimeOfDay, error)
}

// Options carries the startup-resolved collaborators shared by all services.
type Options struct {
	Sunset       SunsetSource
	Location     *time.Location // zone used to derive "now" as a time of day
	Now          func() time.Time
	GraphMaxSize int
	SigningKey   string
	TokenTTL     time.Duration
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.GraphMaxSize <= 0 {
		o.GraphMaxSize = defaultGraphMaxSize
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = defaultTokenTTL
	}
	return o
}

type Service struct {
	Settings
	Readings
	Monitoring
	Authorization
}

func NewService(repos *repository.Repository, opts Options) *Service {
	opts = opts.withDefaults()
	return &Service{
		Settings:      NewSettingsService(repos.SettingsRepo, opts),
		Readings:      NewReadingService(repos.SettingsRepo, repos.ReadingRepo, opts),
		Monitoring:    NewMonitoringService(repos.ReadingRepo, opts),
		Authorization: NewAuthService(repos.Auth, opts),
	}
}
