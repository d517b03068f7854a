package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"smarthub/internal/models"
	"smarthub/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorsOnce sync.Once

// registerValidators adds the custom tags used by request DTOs to gin's validator.
func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("lighttime", validateLightTime)
		}
	})
}

// validateLightTime accepts "HH:MM:SS" or the sunset sentinel.
func validateLightTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == service.SunsetSentinel {
		return true
	}
	_, err := models.ParseTimeOfDay(s)
	return err == nil
}

// settingsRequest is the PUT /settings body.
type settingsRequest struct {
	UserTemp      *float64 `json:"user_temp" binding:"required"`
	UserLight     string   `json:"user_light" binding:"required,lighttime"`
	LightDuration string   `json:"light_duration" binding:"required_unless=UserLight sunset"`
}

func (r settingsRequest) params() service.SettingsParams {
	return service.SettingsParams{
		UserTemp:      *r.UserTemp,
		UserLight:     r.UserLight,
		LightDuration: r.LightDuration,
	}
}

// SettingsRequest documents the PUT /settings payload for Swagger.
type SettingsRequest struct {
	// Fan-on threshold
	UserTemp float64 `json:"user_temp" example:"28.5"`
	// Light-on time as HH:MM:SS, or "sunset"
	UserLight string `json:"user_light" example:"18:30:00"`
	// Light-on duration such as 1h30m; ignored for sunset
	LightDuration string `json:"light_duration" example:"2h30m"`
}

// ReadingRequest documents the PUT /temperature payload for Swagger.
// Additional fields are stored with the reading.
type ReadingRequest struct {
	// Numeric value or numeric string
	Temperature float64 `json:"temperature" example:"29.1"`
	// "1" when someone is present; true/false and 1/0 are accepted
	Presence string `json:"presence" example:"1"`
}

var (
	errMissingTemperature = errors.New("temperature is required")
	errMissingPresence    = errors.New("presence is required")
)

// reservedReadingFields are assigned by the hub and never taken from the body.
var reservedReadingFields = map[string]struct{}{
	"id":           {},
	"fan":          {},
	"light":        {},
	"current_time": {},
}

// readingRequest decodes a device payload. temperature accepts a number or a
// numeric string; presence accepts a string, a bool or 0/1. Any other field
// is kept in Extra.
type readingRequest struct {
	Temperature float64
	Presence    string
	Extra       map[string]any
}

func (r *readingRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t, ok := raw["temperature"]
	if !ok {
		return errMissingTemperature
	}
	temp, err := coerceTemperature(t)
	if err != nil {
		return fmt.Errorf("temperature: %w", err)
	}

	p, ok := raw["presence"]
	if !ok {
		return errMissingPresence
	}
	presence, err := coercePresence(p)
	if err != nil {
		return fmt.Errorf("presence: %w", err)
	}

	var extra map[string]any
	for k, v := range raw {
		if k == "temperature" || k == "presence" {
			continue
		}
		if _, reserved := reservedReadingFields[k]; reserved {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = val
	}

	r.Temperature, r.Presence, r.Extra = temp, presence, extra
	return nil
}

func (r readingRequest) params() service.ReadingParams {
	return service.ReadingParams{Temperature: r.Temperature, Presence: r.Presence, Extra: r.Extra}
}

func coerceTemperature(raw json.RawMessage) (float64, error) {
	if isJSONNull(raw) {
		return 0, errors.New("must not be null")
	}
	var v float64
	switch {
	case isJSONString(raw):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		v = f
	default:
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, errors.New("must be a number or numeric string")
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be finite")
	}
	return v, nil
}

func coercePresence(raw json.RawMessage) (string, error) {
	if isJSONNull(raw) {
		return "", errors.New("must not be null")
	}
	if isJSONString(raw) {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return models.PresenceOn, nil
		}
		return "0", nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f == math.Trunc(f) {
		// 2^63 itself is not representable as int64.
		if f < math.MinInt64 || f >= -math.MinInt64 {
			return "", errors.New("integer out of range")
		}
		return strconv.FormatInt(int64(f), 10), nil
	}
	return "", errors.New("must be a string, bool or integer")
}

func isJSONString(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '"'
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
