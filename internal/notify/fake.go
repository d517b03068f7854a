package notify

import (
	"context"
	"sync"

	"smarthub/internal/models"
)

// FakePublisher records published readings for test assertions.
type FakePublisher struct {
	mu sync.Mutex

	// Readings contains every reading passed to Publish.
	Readings []models.Reading

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(_ context.Context, r models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Readings = append(f.Readings, r)
	return f.PublishError
}

func (f *FakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Published returns a copy of the recorded readings.
func (f *FakePublisher) Published() []models.Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Reading(nil), f.Readings...)
}
