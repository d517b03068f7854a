package repository

import (
	"context"
	"database/sql"
	"errors"

	"smarthub/internal/models"
)

// ErrReadingNotFound is returned by ReadingRepo.ByID for an unknown id.
var ErrReadingNotFound = errors.New("reading not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SettingsRepo holds the single current settings row.
type SettingsRepo interface {
	Save(ctx context.Context, s models.Settings) error
	Load(ctx context.Context) (models.Settings, error)
}

// ReadingRepo is an append-only log of readings.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) (models.Reading, error)
	Latest(ctx context.Context, limit int) ([]models.Reading, error)
	ByID(ctx context.Context, id int64) (models.Reading, error)
}

type Repository struct {
	SettingsRepo SettingsRepo
	ReadingRepo  ReadingRepo
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		SettingsRepo: NewSettingsSQLite(db),
		ReadingRepo:  NewReadingSQLite(db),
		Auth:         NewUserRepository(db),
	}
}
