// Package geocode resolves place names to coordinates through a
// Nominatim-compatible search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smarthub/internal/models"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const defaultTimeout = 10 * time.Second

var (
	// ErrNoResult is returned when the search matched nothing.
	ErrNoResult = errors.New("geocode: no result")
	// ErrBadResponse is returned for non-200 answers or malformed payloads.
	ErrBadResponse = errors.New("geocode: unexpected response")
)

// Result is the best match for a place name.
type Result struct {
	DisplayName string
	Coordinates models.Coordinates
}

type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client performs place searches. Nominatim's usage policy requires a
// descriptive User-Agent on every request.
type Client struct {
	base      string
	userAgent string
	h         *http.Client
}

// New builds a client. A nil httpClient gets a default with a bounded timeout.
func New(base, userAgent string, httpClient *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		userAgent: userAgent,
		h:         httpClient,
	}
}

// Lookup calls GET /search?q=<place>&format=json&limit=1.
func (c *Client) Lookup(ctx context.Context, place string) (Result, error) {
	u, err := url.Parse(c.base + "/search")
	if err != nil {
		return Result{}, err
	}
	q := u.Query()
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.h.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("%w: %s returned %d: %s", ErrBadResponse, u.Path, resp.StatusCode, string(b))
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return Result{}, fmt.Errorf("%w: decode: %v", ErrBadResponse, err)
	}
	if len(hits) == 0 {
		return Result{}, fmt.Errorf("%w for %q", ErrNoResult, place)
	}
	return hits[0].toResult()
}

func (h searchHit) toResult() (Result, error) {
	lat, err := strconv.ParseFloat(h.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: latitude %q", ErrBadResponse, h.Lat)
	}
	lon, err := strconv.ParseFloat(h.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("%w: longitude %q", ErrBadResponse, h.Lon)
	}
	return Result{
		DisplayName: h.DisplayName,
		Coordinates: models.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}
