// Package network is the HTTP client for the remote plant catalogue.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"sunflower/internal/plants/models"
	"sunflower/pkg/platform/circuit"
	"sunflower/pkg/platform/sentinel"
	strs "sunflower/pkg/platform/strings"
)

const (
	plantsPath    = "plants.json"
	sortOrderPath = "custom_plant_sort_order.json"

	maxBodyBytes = 4 << 20
)

// Config holds client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
	// BreakerThreshold is the run of failed requests after which the client
	// stops retrying until the API answers again. Zero uses the breaker default.
	BreakerThreshold int
}

// Client fetches plants and the custom sort order over HTTP. The catalogue
// endpoint has no zone query, so FetchByZone filters the full list.
//
// While the breaker is open each request is tried once; retries resume after
// the API has answered successfully again.
type Client struct {
	base     *url.URL
	http     *http.Client
	attempts uint
	delay    time.Duration
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

// NewClient validates cfg and returns a Client. A nil logger uses slog.Default.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("plant api base url %q: %w", cfg.BaseURL, sentinel.ErrInvalidInput)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if logger == nil {
		logger = slog.Default()
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return &Client{
		base:     base,
		http:     &http.Client{Timeout: cfg.Timeout},
		attempts: attempts,
		delay:    cfg.RetryDelay,
		breaker:  circuit.New("plant-api", circuit.WithFailureThreshold(cfg.BreakerThreshold)),
		logger:   logger,
	}, nil
}

// FetchAll returns the full plant catalogue.
func (c *Client) FetchAll(ctx context.Context) ([]models.Plant, error) {
	var plants []models.Plant
	if err := c.getJSON(ctx, plantsPath, &plants); err != nil {
		return nil, fmt.Errorf("fetch plants: %w", err)
	}
	for i := range plants {
		if plants[i].WateringInterval == 0 {
			plants[i].WateringInterval = models.DefaultWateringInterval
		}
	}
	return plants, nil
}

// FetchByZone returns the plants growing in zone.
func (c *Client) FetchByZone(ctx context.Context, zone models.GrowZone) ([]models.Plant, error) {
	all, err := c.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Plant, 0, len(all))
	for _, p := range all {
		if p.GrowZoneNumber == zone {
			out = append(out, p)
		}
	}
	return out, nil
}

// FetchSortOrder returns the custom display order of plant IDs. Blank and
// repeated IDs are dropped; a repeated ID keeps its first position.
func (c *Client) FetchSortOrder(ctx context.Context) (models.SortOrder, error) {
	var order models.SortOrder
	if err := c.getJSON(ctx, sortOrderPath, &order); err != nil {
		return nil, fmt.Errorf("fetch sort order: %w", err)
	}
	if order == nil {
		return models.SortOrder{}, nil
	}
	return strs.DedupeAndTrim(order), nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	target := c.base.ResolveReference(&url.URL{Path: path}).String()

	attempts := c.attempts
	if c.breaker.IsOpen() {
		attempts = 1
	}
	err := retry.Do(
		func() error {
			return c.fetchOnce(ctx, target, dst)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, sentinel.ErrNetwork) && ctx.Err() == nil
		}),
		retry.OnRetry(func(attempt uint, err error) {
			c.logger.WarnContext(ctx, "plant api request failed, retrying",
				"url", target, "attempt", attempt+1, "max_attempts", attempts, "error", err)
		}),
	)
	c.record(ctx, err)
	return err
}

// record feeds the breaker with request outcomes. Cancellation says nothing
// about the API's health.
func (c *Client) record(ctx context.Context, err error) {
	switch {
	case err == nil:
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "plant api recovered, retries resumed", "breaker", c.breaker.Name())
		}
	case errors.Is(err, sentinel.ErrNetwork) && ctx.Err() == nil:
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "plant api failing, retries suspended", "breaker", c.breaker.Name(), "error", err)
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context, target string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return fmt.Errorf("%w: %s returned %d", sentinel.ErrNetwork, target, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", sentinel.ErrNetwork, target, err)
	}
	return nil
}
