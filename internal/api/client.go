// Package api is the HTTP client for the usage tracker's JSON API.
//
// Every call takes a context so the dashboard can cancel loads that a tab
// switch has made stale. Transport failures, non-2xx replies and malformed
// JSON all come back as *errors.Error (codes API and DECODE); callers that
// do not care about the difference can treat them alike.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/rileyhilliard/usagedash/internal/logger"
)

// RequestIDHeader carries a per-request id so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single request when no option overrides it.
const DefaultTimeout = 5 * time.Second

// Endpoint paths.
const (
	PathStatus           = "/api/status"
	PathStart            = "/api/start"
	PathStop             = "/api/stop"
	PathHourly           = "/api/hourly"
	PathApps             = "/api/apps"
	PathCategories       = "/api/categories"
	PathWeekComparison   = "/api/week-comparison"
	PathTrend            = "/api/trend"
	PathStatsWeek        = "/api/stats/week"
	PathStatsToday       = "/api/stats/today"
	PathAutostart        = "/api/autostart"
	PathAutostartEnable  = "/api/autostart/enable"
	PathAutostartDisable = "/api/autostart/disable"
)

// Client talks to one tracker instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the tracker at baseURL (e.g. http://127.0.0.1:52847).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the tracker address this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the live session snapshot.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var out Status
	err := c.do(ctx, http.MethodGet, PathStatus, nil, &out)
	return out, err
}

// Start begins a monitoring session.
func (c *Client) Start(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathStart, nil, nil)
}

// Stop ends the monitoring session.
func (c *Client) Stop(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathStop, nil, nil)
}

// Hourly fetches today's active seconds per hour.
func (c *Client) Hourly(ctx context.Context) ([]HourlyBucket, error) {
	var out []HourlyBucket
	err := c.do(ctx, http.MethodGet, PathHourly, nil, &out)
	return out, err
}

// Apps fetches the most used apps for a period. A zero limit or empty
// period leaves the parameter out and the server default applies.
func (c *Client) Apps(ctx context.Context, period Period, limit int) ([]AppUsage, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", string(period))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []AppUsage
	err := c.do(ctx, http.MethodGet, PathApps, q, &out)
	return out, err
}

// Categories fetches time per category for a period.
func (c *Client) Categories(ctx context.Context, period Period) ([]CategorySlice, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", string(period))
	}
	var out []CategorySlice
	err := c.do(ctx, http.MethodGet, PathCategories, q, &out)
	return out, err
}

// WeekComparison fetches average active hours per weekday.
func (c *Client) WeekComparison(ctx context.Context) ([]WeekdayAverage, error) {
	var out []WeekdayAverage
	err := c.do(ctx, http.MethodGet, PathWeekComparison, nil, &out)
	return out, err
}

// Trend fetches daily productivity for the last seven days.
func (c *Client) Trend(ctx context.Context) ([]TrendPoint, error) {
	var out []TrendPoint
	err := c.do(ctx, http.MethodGet, PathTrend, nil, &out)
	return out, err
}

// WeekStats fetches the rolling seven-day summary.
func (c *Client) WeekStats(ctx context.Context) (WeekSummary, error) {
	var out WeekSummary
	err := c.do(ctx, http.MethodGet, PathStatsWeek, nil, &out)
	return out, err
}

// TodayStats fetches today's persisted totals.
func (c *Client) TodayStats(ctx context.Context) (TodaySummary, error) {
	var out TodaySummary
	err := c.do(ctx, http.MethodGet, PathStatsToday, nil, &out)
	return out, err
}

// Autostart reports whether the tracker launches at login.
func (c *Client) Autostart(ctx context.Context) (AutostartState, error) {
	var out AutostartState
	err := c.do(ctx, http.MethodGet, PathAutostart, nil, &out)
	return out, err
}

// EnableAutostart asks the tracker to register itself for login launch.
func (c *Client) EnableAutostart(ctx context.Context) (AutostartAck, error) {
	var out AutostartAck
	err := c.do(ctx, http.MethodPost, PathAutostartEnable, nil, &out)
	return out, err
}

// DisableAutostart asks the tracker to remove its login launch entry.
func (c *Client) DisableAutostart(ctx context.Context) (AutostartAck, error) {
	var out AutostartAck
	err := c.do(ctx, http.MethodPost, PathAutostartDisable, nil, &out)
	return out, err
}

// do performs one request and decodes a JSON reply into out. A nil out
// discards the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			fmt.Sprintf("Can't build request for %s", op),
			"Check server.url in your config")
	}

	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("%s id=%s failed after %s: %v", op, id, time.Since(start).Round(time.Millisecond), err)
		return errors.WrapWithCode(err, errors.ErrAPI,
			fmt.Sprintf("%s failed", op),
			fmt.Sprintf("Is the tracker running at %s?", c.baseURL))
	}
	defer resp.Body.Close()

	c.log.Debug("%s id=%s status=%d in %s", op, id, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("%s returned %d", op, resp.StatusCode),
			"Check the tracker's own log for details")
	}

	if out == nil {
		// Body is not part of the contract; any 2xx confirms.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.ErrDecode,
			fmt.Sprintf("Can't decode reply from %s", op),
			"The tracker may be a different version than this client")
	}

	return nil
}
