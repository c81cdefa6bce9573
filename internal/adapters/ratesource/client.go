// Package ratesource fetches live exchange-rate tables over HTTP.
package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/ports"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRetries = 3
	initialBackoff = 200 * time.Millisecond
)

// statusError is a non-200 reply from the rate API.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unable to fetch rates due to code: %d", e.code)
}

type response struct {
	Success     *bool                      `json:"success"`
	Base        string                     `json:"base"`
	Rates       map[string]decimal.Decimal `json:"rates"`
	Description string                     `json:"description"`
}

type client struct {
	endpoint    *url.URL
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retrier     *retrier.Retrier
}

// Option customises the client.
type Option func(*client)

func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetries sets how many times a transient failure is retried with exponential backoff.
func WithRetries(n int) Option {
	return func(c *client) {
		if n < 0 {
			n = 0
		}
		c.retrier = retrier.New(retrier.ExponentialBackoff(n, initialBackoff), transientClassifier{})
	}
}

func WithLimiter(l *rate.Limiter) Option {
	return func(c *client) { c.rateLimiter = l }
}

// New builds a RateSource for endpoint. A non-empty apiKey is sent as the
// api_key query parameter on every request.
func New(endpoint, apiKey string, opts ...Option) (ports.RateSource, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rates endpoint %q: %w", endpoint, err)
	}

	c := &client{
		endpoint:    base,
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		retrier:     retrier.New(retrier.ExponentialBackoff(defaultRetries, initialBackoff), transientClassifier{}),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: roundTripperFn(
				func(req *http.Request) (*http.Response, error) {
					if apiKey != "" {
						params := req.URL.Query()
						params.Set("api_key", apiKey)
						req.URL.RawQuery = params.Encode()
					}
					return http.DefaultTransport.RoundTrip(req)
				},
			),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchRates implements ports.RateSource.
// GET {endpoint}?base=USD
func (c *client) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	base := strings.ToUpper(baseCurrency)
	logger := middleware.GetLoggerFromCtx(ctx)

	var out response
	err := c.retrier.RunCtx(ctx, func(ctx context.Context) error {
		out = response{}
		return c.do(ctx, base, &out)
	})
	if err != nil {
		logger.Warn("Rate fetch failed", slog.String("base", base), slog.String("error", err.Error()))
		return nil, err
	}
	if out.Success != nil && !*out.Success {
		return nil, fmt.Errorf("rate API rejected request: %s", out.Description)
	}
	if len(out.Rates) == 0 {
		return nil, errors.New("rate API returned no rates")
	}

	rates := make(map[string]decimal.Decimal, len(out.Rates)+1)
	for code, r := range out.Rates {
		rates[strings.ToUpper(code)] = r
	}
	rates[base] = decimal.NewFromInt(1)

	logger.Debug("Fetched exchange rates", slog.String("base", base), slog.Int("count", len(rates)))
	return rates, nil
}

func (c *client) do(ctx context.Context, base string, v *response) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	u := *c.endpoint
	query := u.Query()
	query.Set("base", base)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode rates response: %w", err)
	}
	return nil
}

// transientClassifier retries network failures, throttling and server errors.
// Anything else, including a malformed body, fails immediately.
type transientClassifier struct{}

func (transientClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retrier.Fail
	}

	var se *statusError
	if errors.As(err, &se) {
		if se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError {
			return retrier.Retry
		}
		return retrier.Fail
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return retrier.Retry
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return retrier.Retry
	}
	return retrier.Fail
}

type roundTripperFn func(*http.Request) (*http.Response, error)

func (fn roundTripperFn) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}
