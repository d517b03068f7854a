package models

import "time"

// Light schedule sources.
const (
	LightSourceTime   = "time"   // user_light given as HH:MM:SS
	LightSourceSunset = "sunset" // user_light resolved from today's sunset
)

// Settings is the single current configuration of the hub.
type Settings struct {
	ID           int       `json:"id"`
	UserTemp     float64   `json:"user_temp"`      // fan-on threshold
	UserLight    TimeOfDay `json:"user_light"`     // light-on time
	LightTimeOff TimeOfDay `json:"light_time_off"` // light-off time
	LightSource  string    `json:"light_source"`   // time | sunset
	UpdatedAt    time.Time `json:"updated_at"`
}

// Configured reports whether the record was loaded from the store.
func (s Settings) Configured() bool { return s.ID != 0 }

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
