package models

import (
	"encoding/json"
	"time"
)

// PresenceOn is the only presence value that counts as "someone is here".
const PresenceOn = "1"

// Reading is one ingested sensor sample plus the actuator states derived
// from the settings in force when it arrived. Readings are never updated.
type Reading struct {
	ID          int64          `json:"id"`
	Temperature float64        `json:"temperature"`
	Presence    string         `json:"presence"`
	Fan         bool           `json:"fan"`
	Light       bool           `json:"light"`
	CurrentTime time.Time      `json:"current_time"`
	Extra       map[string]any `json:"extra,omitempty"` // unrecognised request fields
}

// Present reports whether the presence flag is set.
func (r Reading) Present() bool { return r.Presence == PresenceOn }

// GraphPoint is the projection of a Reading used by the history graph.
type GraphPoint struct {
	Temperature float64   `json:"temperature"`
	Presence    string    `json:"presence"`
	Datetime    time.Time `json:"datetime"`
}

// IdleState is reported by /state before the first reading is stored.
type IdleState struct {
	Presence    bool      `json:"presence"`
	Fan         bool      `json:"fan"`
	Light       bool      `json:"light"`
	CurrentTime time.Time `json:"current_time"`
}

// State is the latest reading, or an idle snapshot when none exists.
type State struct {
	Reading *Reading
	Idle    IdleState
}

func (s State) MarshalJSON() ([]byte, error) {
	if s.Reading != nil {
		return json.Marshal(s.Reading)
	}
	return json.Marshal(s.Idle)
}
