package sunset

import (
	"context"
	"fmt"

	"smarthub/internal/models"
)

// Resolver answers "when is sunset today" for a location fixed at startup.
// It never re-resolves the location.
type Resolver struct {
	client *Client
	at     models.Coordinates
	err    error
}

// NewResolver binds a client to resolved coordinates.
func NewResolver(client *Client, at models.Coordinates) *Resolver {
	return &Resolver{client: client, at: at}
}

// Unresolved returns a Resolver that fails every lookup with cause.
func Unresolved(client *Client, cause error) *Resolver {
	return &Resolver{client: client, err: cause}
}

// Coordinates returns the bound location and whether it was resolved.
func (r *Resolver) Coordinates() (models.Coordinates, bool) {
	return r.at, r.err == nil
}

// Today fetches today's sunset for the bound location.
func (r *Resolver) Today(ctx context.Context) (models.TimeOfDay, error) {
	if r.err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLocationUnresolved, r.err)
	}
	return r.client.Sunset(ctx, r.at)
}
