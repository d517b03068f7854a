// Package sunset fetches today's sunset time from a sunrise-sunset.org
// compatible API.
package sunset

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

// DefaultBaseURL is the public sunrise-sunset.org API.
const DefaultBaseURL = "https://api.sunrise-sunset.org"

// The API reports 12-hour clock times, e.g. "6:41:03 PM".
const apiTimeLayout = "3:04:05 PM"

const (
	defaultTimeout = 10 * time.Second
	statusOK       = "OK"
)

var (
	// ErrUpstream covers transport failures and non-200 answers.
	ErrUpstream = errors.New("sunset: upstream request failed")
	// ErrUnexpectedResponse is returned when the payload is not the expected shape.
	ErrUnexpectedResponse = errors.New("sunset: unexpected response")
	// ErrLocationUnresolved is returned by a Resolver whose startup geocoding failed.
	ErrLocationUnresolved = errors.New("sunset: location unresolved")
)

type apiResponse struct {
	Results *struct {
		Sunset string `json:"sunset"`
	} `json:"results"`
	Status string `json:"status"`
}

// Client queries the sunset API. Every call is a fresh request.
type Client struct {
	base string
	tzid string
	h    *http.Client
}

// New builds a client. tzid, when set, asks the API to report times in that
// IANA zone instead of UTC.
func New(base, tzid string, httpClient *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{base: strings.TrimRight(base, "/"), tzid: tzid, h: httpClient}
}

// Sunset calls GET /json?lat=..&lng=..[&tzid=..] and returns the sunset
// as a 24-hour time of day.
func (c *Client) Sunset(ctx context.Context, at models.Coordinates) (models.TimeOfDay, error) {
	u, err := url.Parse(c.base + "/json")
	if err != nil {
		return 0, err
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(at.Longitude, 'f', -1, 64))
	if c.tzid != "" {
		q.Set("tzid", c.tzid)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.h.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: %s returned %d: %s", ErrUpstream, u.Path, resp.StatusCode, string(b))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: decode: %v", ErrUnexpectedResponse, err)
	}
	if payload.Status != statusOK || payload.Results == nil || payload.Results.Sunset == "" {
		return 0, fmt.Errorf("%w: status %q", ErrUnexpectedResponse, payload.Status)
	}
	return parseAPITime(payload.Results.Sunset)
}

func parseAPITime(s string) (models.TimeOfDay, error) {
	t, err := time.Parse(apiTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: sunset %q: %v", ErrUnexpectedResponse, s, err)
	}
	return models.TimeOfDayOf(t), nil
}
