package soda

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
)

const (
	// Connection pool settings
	maxIdleConns        = 10
	maxConnsPerHost     = 5
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second

	// Retry defaults
	defaultMaxRetries      = 3
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errBadStatus   = errors.New("unexpected status code")
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithAppToken sets the X-App-Token header sent with every request.
// Without a token Socrata serves requests from a shared, throttled pool.
func WithAppToken(token string) ClientOption {
	return func(c *Client) { c.appToken = token }
}

// WithTimeout overrides the per-request timeout (connect through full body).
// Apply after WithHTTPClient when combining the two.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxRetries overrides how many times transient failures are retried,
// keeping the default backoff intervals.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff overrides the retry schedule for transient failures.
func WithBackoff(maxRetries int, initial, max time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialInterval = initial
		c.maxInterval = max
	}
}

// Client fetches tabular resources from a Socrata Open Data API portal.
//
// One Client serves one portal host; the dataset identifier is passed per
// request so trip records and the zone lookup table can share a client,
// its connection pool, and its circuit breaker.
type Client struct {
	baseURL    string
	appToken   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker

	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// NewClient creates a SODA client for the given portal base URL
// (e.g., "https://data.cityofnewyork.us") with connection pooling and a
// circuit breaker shared across requests.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "soda",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchRows requests dataset rows as CSV and decodes them into a RowSet.
//
// Errors:
//   - ErrRemoteUnavailable: transport failure, timeout, HTTP error status,
//     or open circuit. Transient statuses (429, 5xx) are retried with
//     exponential backoff before giving up.
//   - ErrMalformedResponse: the body is not parseable CSV, has no header
//     row, or has records whose column count differs from the header.
func (c *Client) FetchRows(ctx context.Context, dataset string, q Query) (*RowSet, error) {
	u := fmt.Sprintf("%s/resource/%s.csv", c.baseURL, dataset)
	if enc := q.Encode().Encode(); enc != "" {
		u += "?" + enc
	}

	log := logger.Component("soda")
	start := time.Now()

	resp, err := c.doWithResilience(ctx, u)
	if err != nil {
		log.Error().Str("dataset", dataset).Err(err).Msg("fetch failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rs, err := decodeRowSet(resp.Body)
	if err != nil {
		log.Error().Str("dataset", dataset).Err(err).Msg("decode failed")
		return nil, err
	}

	log.Info().
		Str("dataset", dataset).
		Int("rows", len(rs.Records)).
		Dur("elapsed", time.Since(start)).
		Msg("fetch done")
	return rs, nil
}

// doWithResilience executes the GET with retries, exponential backoff,
// and the circuit breaker. Every failure is wrapped in ErrRemoteUnavailable;
// only transient classes (transport errors, 429, 5xx) are retried.
func (c *Client) doWithResilience(ctx context.Context, url string) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, ctx.Err())
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: build request: %v", ErrRemoteUnavailable, err)
		}
		req.Header.Set("Accept", "text/csv")
		if c.appToken != "" {
			req.Header.Set("X-App-Token", c.appToken)
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			resp, execErr := c.httpClient.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			// Classify error statuses so only transient ones are retried.
			if resp.StatusCode == http.StatusTooManyRequests {
				_ = resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				_ = resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				_ = resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrRemoteUnavailable)
			}
			return resp, nil
		}

		// Open circuit: propagate immediately, retrying would be pointless.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open: %v", ErrRemoteUnavailable, err)
		}

		// Client-side statuses (4xx other than 429) do not improve on retry.
		if errors.Is(err, errBadStatus) {
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}

		lastErr = err
		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, lastErr)
		}

		delay := c.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.maxInterval && c.maxInterval > 0 {
			delay = c.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, ctx.Err())
		case <-timer.C:
		}

		attempt++
	}
}

// decodeRowSet parses a CSV body into a RowSet.
//
// The header row is required. Column counts are checked explicitly so the
// error can say which record broke instead of csv's generic message.
func decodeRowSet(body io.Reader) (*RowSet, error) {
	r := csv.NewReader(body)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedResponse, err)
	}

	rs := &RowSet{Columns: header}
	line := 1

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read record after line %d: %v", ErrMalformedResponse, line, err)
		}
		line++
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d columns, header has %d", ErrMalformedResponse, line, len(rec), len(header))
		}
		rs.Records = append(rs.Records, rec)
	}

	return rs, nil
}
