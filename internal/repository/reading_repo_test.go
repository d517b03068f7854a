package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"smarthub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var readingCols = []string{"id", "temperature", "presence", "fan", "light", "recorded_at", "extra"}

func newReadingRepo(t *testing.T) (*ReadingSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewReadingSQLite(db), mock
}

func TestReadingSQLite_Append_ReturnsStoredReading(t *testing.T) {
	repo, mock := newReadingRepo(t)

	at := time.Date(2024, 7, 4, 12, 0, 0, 0, time.FixedZone("X", 3600))

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(26.5, "1", true, false, at.UTC(), `{"humidity":40}`).
		WillReturnResult(sqlmock.NewResult(17, 1))

	got, err := repo.Append(context.Background(), models.Reading{
		Temperature: 26.5,
		Presence:    "1",
		Fan:         true,
		CurrentTime: at,
		Extra:       map[string]any{"humidity": 40},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.ID != 17 {
		t.Fatalf("expected id 17, got %d", got.ID)
	}
	if got.CurrentTime.Location() != time.UTC || !got.CurrentTime.Equal(at) {
		t.Fatalf("expected UTC timestamp equal to input, got %v", got.CurrentTime)
	}
}

func TestReadingSQLite_Append_NoExtraStoresNull(t *testing.T) {
	repo, mock := newReadingRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(20.0, "0", false, false, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.Append(context.Background(), models.Reading{Temperature: 20, Presence: "0"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.CurrentTime.IsZero() {
		t.Fatalf("expected CurrentTime to be stamped")
	}
}

func TestReadingSQLite_Append_ExecError(t *testing.T) {
	repo, mock := newReadingRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WillReturnError(errors.New("disk full"))

	if _, err := repo.Append(context.Background(), models.Reading{Presence: "1"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestReadingSQLite_Latest_NewestFirst(t *testing.T) {
	repo, mock := newReadingRepo(t)

	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(selectLatestReadingsSQL)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(readingCols).
			AddRow(9, 27.0, "1", true, true, t2, nil).
			AddRow(8, 22.0, "0", false, false, t1, `{"source":"esp32"}`))

	got, err := repo.Latest(context.Background(), 2)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(got) != 2 || got[0].ID != 9 || got[1].ID != 8 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Extra != nil {
		t.Fatalf("expected nil extra for NULL column, got %v", got[0].Extra)
	}
	if got[1].Extra["source"] != "esp32" {
		t.Fatalf("expected decoded extra, got %v", got[1].Extra)
	}
}

func TestReadingSQLite_Latest_QueryError(t *testing.T) {
	repo, mock := newReadingRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectLatestReadingsSQL)).
		WithArgs(5).
		WillReturnError(errors.New("locked"))

	if _, err := repo.Latest(context.Background(), 5); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestReadingSQLite_ByID(t *testing.T) {
	repo, mock := newReadingRepo(t)

	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectReadingByIDSQL)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(readingCols).AddRow(3, 24.0, "1", false, true, at, `not-json`))
	mock.ExpectQuery(regexp.QuoteMeta(selectReadingByIDSQL)).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.ByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if !got.Light || got.Presence != "1" {
		t.Fatalf("unexpected reading: %+v", got)
	}
	if got.Extra["raw"] != "not-json" {
		t.Fatalf("expected malformed extra kept raw, got %v", got.Extra)
	}

	if _, err := repo.ByID(context.Background(), 4); !errors.Is(err, ErrReadingNotFound) {
		t.Fatalf("expected ErrReadingNotFound, got %v", err)
	}
}
