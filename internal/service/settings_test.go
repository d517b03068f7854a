package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smarthub/internal/models"
	"smarthub/internal/timespec"
)

func TestSettingsService_Update_InsertThenUpdateSameRecord(t *testing.T) {
	repo := &memSettingsRepo{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewSettingsService(repo, Options{Now: fixedClock(now)})
	ctx := context.Background()

	first, err := svc.Update(ctx, SettingsParams{UserTemp: 25, UserLight: "18:00:00", LightDuration: "1h30m"})
	if err != nil {
		t.Fatalf("first Update: %v", err)
	}
	if repo.inserts != 1 || repo.updates != 0 || repo.count() != 1 {
		t.Fatalf("first write should insert: inserts=%d updates=%d", repo.inserts, repo.updates)
	}
	if first.UserLight.String() != "18:00:00" || first.LightTimeOff.String() != "19:30:00" {
		t.Fatalf("unexpected times: %s -> %s", first.UserLight, first.LightTimeOff)
	}
	if first.LightSource != models.LightSourceTime || !first.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", first)
	}

	second, err := svc.Update(ctx, SettingsParams{UserTemp: 30, UserLight: "06:00:00", LightDuration: "45s"})
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if repo.inserts != 1 || repo.updates != 1 || repo.count() != 1 {
		t.Fatalf("second write should update in place: inserts=%d updates=%d", repo.inserts, repo.updates)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record id, got %d and %d", first.ID, second.ID)
	}
	if second.UserTemp != 30 || second.UserLight.String() != "06:00:00" || second.LightTimeOff.String() != "06:00:45" {
		t.Fatalf("fields not replaced: %+v", second)
	}
}

func TestSettingsService_Update_OffTimeWrapsPastMidnight(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{}, Options{})
	got, err := svc.Update(context.Background(), SettingsParams{UserTemp: 20, UserLight: "23:30:00", LightDuration: "1h"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.LightTimeOff.String() != "00:30:00" {
		t.Fatalf("expected 00:30:00, got %s", got.LightTimeOff)
	}
}

func TestSettingsService_Update_SunsetSkipsDuration(t *testing.T) {
	sun := &fakeSunset{at: tod(t, "18:41:03")}
	repo := &memSettingsRepo{}
	svc := NewSettingsService(repo, Options{Sunset: sun})

	// light_duration is present but must not be applied on the sunset path.
	got, err := svc.Update(context.Background(), SettingsParams{UserTemp: 25, UserLight: "sunset", LightDuration: "2h"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if sun.calls != 1 {
		t.Fatalf("expected one sunset lookup, got %d", sun.calls)
	}
	if got.UserLight.String() != "18:41:03" {
		t.Fatalf("user_light: want sunset, got %s", got.UserLight)
	}
	if got.LightTimeOff != got.UserLight {
		t.Fatalf("light_time_off should equal the unmodified sunset, got %s", got.LightTimeOff)
	}
	if got.LightSource != models.LightSourceSunset {
		t.Fatalf("expected sunset source, got %q", got.LightSource)
	}
}

func TestSettingsService_Update_SunsetIgnoresInvalidDuration(t *testing.T) {
	svc := NewSettingsService(&memSettingsRepo{}, Options{Sunset: &fakeSunset{at: tod(t, "18:00:00")}})
	if _, err := svc.Update(context.Background(), SettingsParams{UserLight: "sunset", LightDuration: ""}); err != nil {
		t.Fatalf("sunset path must not consume light_duration: %v", err)
	}
}

func TestSettingsService_Update_Errors(t *testing.T) {
	cases := []struct {
		name    string
		params  SettingsParams
		sunset  SunsetSource
		saveErr error
		wantErr error
	}{
		{"bad light time", SettingsParams{UserLight: "6pm", LightDuration: "1h"}, nil, nil, ErrValidation},
		{"missing duration", SettingsParams{UserLight: "18:00:00", LightDuration: ""}, nil, nil, timespec.ErrNoDuration},
		{"unparseable duration", SettingsParams{UserLight: "18:00:00", LightDuration: "soon"}, nil, nil, ErrValidation},
		{"overflowing duration", SettingsParams{UserLight: "18:00:00", LightDuration: "3000000h"}, nil, nil, ErrValidation},
		{"overflowing duration cause", SettingsParams{UserLight: "18:00:00", LightDuration: "3000000h"}, nil, nil, timespec.ErrOutOfRange},
		{"sunset upstream failure", SettingsParams{UserLight: "sunset"}, &fakeSunset{err: errors.New("dial tcp: timeout")}, nil, ErrUpstream},
		{"no sunset source", SettingsParams{UserLight: "sunset"}, nil, nil, ErrUpstream},
		{"store failure", SettingsParams{UserLight: "18:00:00", LightDuration: "1h"}, nil, errors.New("db down"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memSettingsRepo{saveErr: tc.saveErr}
			svc := NewSettingsService(repo, Options{Sunset: tc.sunset})
			_, err := svc.Update(context.Background(), tc.params)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.saveErr == nil && repo.count() != 0 {
				t.Fatalf("nothing should be stored on %s", tc.name)
			}
		})
	}
}

func TestSettingsService_Current(t *testing.T) {
	repo := &memSettingsRepo{}
	svc := NewSettingsService(repo, Options{})

	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrSettingsNotConfigured) {
		t.Fatalf("expected ErrSettingsNotConfigured, got %v", err)
	}

	repo.row = &models.Settings{ID: 1, UserTemp: 22}
	got, err := svc.Current(context.Background())
	if err != nil || got.UserTemp != 22 {
		t.Fatalf("Current: got %+v err=%v", got, err)
	}
}
