package config

import (
	"errors"
)

var (
	// ErrEmptyPort is returned when no listening port is configured.
	ErrEmptyPort = errors.New("config port can not be empty")

	// ErrBadTimeout is returned when an outbound timeout is not positive.
	ErrBadTimeout = errors.New("config timeouts must be positive")

	// ErrNoSigningKey is returned when auth is enabled without a signing key.
	ErrNoSigningKey = errors.New("config auth.signing_key is required when auth.enabled is set")

	// ErrPartialCoordinates is returned when only one of latitude/longitude is set.
	ErrPartialCoordinates = errors.New("config location.latitude and location.longitude must be set together")

	// ErrEmptyPlace is returned when neither coordinates nor a place name are configured.
	ErrEmptyPlace = errors.New("config location.place can not be empty without coordinates")
)
