// Package notify publishes derived actuator state to downstream devices.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"smarthub/internal/models"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "smarthub/actuators"

// Publisher sends the actuator state of a stored reading.
type Publisher interface {
	// Publish returns an error if the message could not be handed to the broker.
	// Callers log and continue; the reading is already stored.
	Publish(ctx context.Context, r models.Reading) error
	Close() error
}

// Payload is the wire format consumed by actuator nodes.
type Payload struct {
	Fan         bool    `json:"fan"`
	Light       bool    `json:"light"`
	Temperature float64 `json:"temperature"`
	Timestamp   string  `json:"timestamp"`
}

// FormatPayload serialises r's derived state.
func FormatPayload(r models.Reading) ([]byte, error) {
	return json.Marshal(Payload{
		Fan:         r.Fan,
		Light:       r.Light,
		Temperature: r.Temperature,
		Timestamp:   r.CurrentTime.UTC().Format(time.RFC3339),
	})
}

// Nop discards everything. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.Reading) error { return nil }
func (Nop) Close() error                                  { return nil }
