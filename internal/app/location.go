package app

import (
	"context"
	"net/http"

	"smarthub/internal/config"
	"smarthub/internal/geocode"
	"smarthub/internal/logger"
	"smarthub/internal/metrics"
	"smarthub/internal/models"
	"smarthub/internal/sunset"
)

const (
	upstreamGeocode = "geocode"
	upstreamSunset  = "sunset"
)

func upstreamClient(cfg config.UpstreamConfig, m *metrics.Metrics, name string) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: m.RoundTripper(name, http.DefaultTransport),
	}
}

// newResolver binds the sunset client to the configured location. Geocoding
// happens once; on failure the resolver reports the cause on every call.
func newResolver(ctx context.Context, cfg config.Config, m *metrics.Metrics, log *logger.Logger) *sunset.Resolver {
	client := sunset.New(cfg.Sunset.BaseURL, cfg.Timezone, upstreamClient(cfg.Sunset, m, upstreamSunset))

	if cfg.Location.HasCoordinates() {
		at := models.Coordinates{Latitude: *cfg.Location.Latitude, Longitude: *cfg.Location.Longitude}
		log.Infow("location_configured", "latitude", at.Latitude, "longitude", at.Longitude)
		return sunset.NewResolver(client, at)
	}

	geo := geocode.New(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, upstreamClient(cfg.Geocode, m, upstreamGeocode))
	res, err := geo.Lookup(ctx, cfg.Location.Place)
	if err != nil {
		log.Warnw("location_geocode_failed", "place", cfg.Location.Place, "err", err)
		return sunset.Unresolved(client, err)
	}
	log.Infow("location_resolved",
		"place", cfg.Location.Place,
		"display_name", res.DisplayName,
		"latitude", res.Coordinates.Latitude,
		"longitude", res.Coordinates.Longitude,
	)
	return sunset.NewResolver(client, res.Coordinates)
}
