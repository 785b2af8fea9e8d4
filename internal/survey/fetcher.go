// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/metrics"
)

const (
	defaultMaxRetries = 3
	maxResponseBody   = 16 << 20
	maxRetryAfter     = 10 * time.Minute
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepCtx is the production SleepFunc.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FetcherConfig configures one source's HTTP access.
type FetcherConfig struct {
	Source      string
	UserAgent   string
	MaxRetries  int           // total attempts, default 3
	Timeout     time.Duration // per attempt, default 30s
	MinInterval time.Duration // minimum spacing between requests, 0 = unlimited
	Client      *http.Client
}

// Fetcher performs GET requests against one catalog API with retry,
// backoff, a courtesy rate limit and a circuit breaker.
type Fetcher struct {
	source     string
	userAgent  string
	maxRetries int
	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	sleep      SleepFunc
	log        zerolog.Logger
}

// NewFetcher creates a fetcher. Each source gets its own breaker so one
// failing catalog does not block the others.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "AIScout/1.0"
	}

	f := &Fetcher{
		source:     cfg.Source,
		userAgent:  userAgent,
		maxRetries: maxRetries,
		client:     client,
		limiter:    rate.NewLimiter(limit, 1),
		sleep:      sleepCtx,
		log:        logging.With().Str("component", "fetcher").Str("source", cfg.Source).Logger(),
	}
	f.breaker = newBreaker(cfg.Source)
	return f
}

// newBreaker opens after 5 consecutive failed attempts and tries again
// after two minutes. 429 responses and caller cancellation do not count as
// failures.
func newBreaker(source string) *gobreaker.CircuitBreaker[[]byte] {
	name := source + "-api"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *HTTPStatusError
			return errors.As(err, &statusErr) && statusErr.RateLimited()
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})
}

// SetSleepForTesting replaces the backoff sleep.
func (f *Fetcher) SetSleepForTesting(sleep SleepFunc) {
	f.sleep = sleep
}

// Source returns the source name the fetcher was built for.
func (f *Fetcher) Source() string {
	return f.source
}

// FetchWithRetry GETs rawURL and returns the response body.
//
// Every attempt counts toward MaxRetries. A 429 waits for Retry-After (or
// 2^attempt seconds when the header is absent); any other failure waits
// 2^attempt seconds. The last error is returned wrapped in
// ErrRetriesExhausted. An open breaker and context cancellation end the
// loop immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := f.attempt(ctx, rawURL, header)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrCircuitOpen) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err

		if attempt == f.maxRetries-1 {
			break
		}

		delay := backoff(attempt)
		var statusErr *HTTPStatusError
		rateLimited := errors.As(err, &statusErr) && statusErr.RateLimited()
		if rateLimited && statusErr.RetryAfter > 0 {
			delay = statusErr.RetryAfter
		}
		metrics.RecordRetry(f.source, rateLimited)

		f.log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", f.maxRetries).
			Dur("delay", delay).
			Bool("rate_limited", rateLimited).
			Msg("Fetch failed, retrying")

		if err := f.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%s: %w after %d attempts: %w", f.source, ErrRetriesExhausted, f.maxRetries, lastErr)
}

// FetchJSON fetches rawURL and decodes the body into v.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, header http.Header, v interface{}) error {
	body, err := f.FetchWithRetry(ctx, rawURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", f.source, err)
	}
	return nil
}

// backoff returns 2^attempt seconds.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// attempt performs one request through the breaker.
func (f *Fetcher) attempt(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	start := time.Now()
	body, err := f.breaker.Execute(func() ([]byte, error) {
		return f.do(ctx, rawURL, header)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordFetch(f.source, "breaker_open", 0)
		return nil, fmt.Errorf("%s: %w", f.source, ErrCircuitOpen)
	case err == nil:
		metrics.RecordFetch(f.source, "ok", time.Since(start))
		return body, nil
	}

	outcome := "network_error"
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		outcome = "http_error"
		if statusErr.RateLimited() {
			outcome = "rate_limited"
		}
	}
	metrics.RecordFetch(f.source, outcome, time.Since(start))
	return nil, err
}

func (f *Fetcher) do(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, query string included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("request to %s failed: %w", redactURL(rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(raw)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = t.Sub(now)
	}
	if d < 0 {
		return 0
	}
	return min(d, maxRetryAfter)
}

// redactURL drops query parameters, which may carry API keys.
func redactURL(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
