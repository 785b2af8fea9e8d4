// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	gobreaker "github.com/sony/gobreaker/v2"
)

// sleepRecorder records requested delays without waiting.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

func newTestFetcher(t *testing.T, source string, maxRetries int) (*Fetcher, *sleepRecorder) {
	t.Helper()
	f := NewFetcher(FetcherConfig{Source: source, MaxRetries: maxRetries, UserAgent: "aiscout-test"})
	rec := &sleepRecorder{}
	f.SetSleepForTesting(rec.sleep)
	return f, rec
}

func TestFetchWithRetry_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("custom header not forwarded")
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f, rec := newTestFetcher(t, "success", 3)
	header := http.Header{}
	header.Set("X-Test", "yes")

	var out struct {
		OK bool `json:"ok"`
	}
	if err := f.FetchJSON(context.Background(), srv.URL, header, &out); err != nil {
		t.Fatalf("FetchJSON failed: %v", err)
	}
	if !out.OK {
		t.Error("expected decoded body")
	}
	if gotUA != "aiscout-test" {
		t.Errorf("User-Agent = %q, want aiscout-test", gotUA)
	}
	if len(rec.recorded()) != 0 {
		t.Errorf("no sleep expected on success, got %v", rec.recorded())
	}
}

func TestFetchWithRetry_BoundedAttempts(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		failures   int32
		wantCalls  int32
		wantErr    bool
		wantSleeps []time.Duration
	}{
		{"first try", 3, 0, 1, false, nil},
		{"one retry", 3, 1, 2, false, []time.Duration{time.Second}},
		{"last attempt", 3, 2, 3, false, []time.Duration{time.Second, 2 * time.Second}},
		{"exhausted", 3, 10, 3, true, []time.Duration{time.Second, 2 * time.Second}},
		{"single attempt", 1, 10, 1, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= tt.failures {
					http.Error(w, "boom", http.StatusInternalServerError)
					return
				}
				_, _ = w.Write([]byte("ok"))
			}))
			defer srv.Close()

			f, rec := newTestFetcher(t, "bounded-"+tt.name, tt.maxRetries)
			body, err := f.FetchWithRetry(context.Background(), srv.URL, nil)

			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrRetriesExhausted) {
					t.Fatalf("expected ErrRetriesExhausted, got %v", err)
				}
				var statusErr *HTTPStatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
					t.Errorf("last error should be the 500 response, got %v", err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(body) != "ok" {
					t.Errorf("body = %q", body)
				}
			}

			got := rec.recorded()
			if len(got) != len(tt.wantSleeps) {
				t.Fatalf("sleeps = %v, want %v", got, tt.wantSleeps)
			}
			for i := range got {
				if got[i] != tt.wantSleeps[i] {
					t.Errorf("sleep[%d] = %v, want %v", i, got[i], tt.wantSleeps[i])
				}
			}
		})
	}
}

func TestFetchWithRetry_HonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, rec := newTestFetcher(t, "retry-after", 3)
	if _, err := f.FetchWithRetry(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.recorded()
	if len(got) != 1 || got[0] < 2*time.Second {
		t.Errorf("expected one wait of at least 2s, got %v", got)
	}
}

func TestFetchWithRetry_RateLimitWithoutHeaderUsesBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, rec := newTestFetcher(t, "retry-no-header", 3)
	if _, err := f.FetchWithRetry(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.recorded(); len(got) != 1 || got[0] != time.Second {
		t.Errorf("expected a 1s backoff, got %v", got)
	}
}

// TestFetchWithRetry_RealRetryAfterWait uses the production sleep.
func TestFetchWithRetry_RealRetryAfterWait(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real Retry-After")
	}

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{Source: "real-wait", MaxRetries: 3})
	start := time.Now()
	if _, err := f.FetchWithRetry(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("retried after %v, want at least 1s", elapsed)
	}
}

func TestFetchWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	f := NewFetcher(FetcherConfig{Source: "cancel", MaxRetries: 3})
	f.SetSleepForTesting(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})

	_, err := f.FetchWithRetry(ctx, srv.URL, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestFetchWithRetry_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, "breaker", 3)

	if _, err := f.FetchWithRetry(context.Background(), srv.URL, nil); !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("first call: expected ErrRetriesExhausted, got %v", err)
	}
	_, err := f.FetchWithRetry(context.Background(), srv.URL, nil)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second call: expected ErrCircuitOpen, got %v", err)
	}
	if got := calls.Load(); got != 5 {
		t.Errorf("server saw %d requests, want 5 before the breaker opened", got)
	}
	if f.breaker.State() != gobreaker.StateOpen {
		t.Errorf("breaker state = %v, want open", f.breaker.State())
	}
}

func TestFetchWithRetry_RateLimitDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, "rate-limited", 3)
	for i := 0; i < 3; i++ {
		_, err := f.FetchWithRetry(context.Background(), srv.URL, nil)
		if errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("call %d: breaker opened on 429 responses", i)
		}
	}
	if f.breaker.State() != gobreaker.StateClosed {
		t.Errorf("breaker state = %v, want closed", f.breaker.State())
	}
}

func TestFetchWithRetry_ErrorDoesNotLeakQuery(t *testing.T) {
	f, _ := newTestFetcher(t, "leak", 1)
	_, err := f.FetchWithRetry(context.Background(), "http://127.0.0.1:1/search?key=SECRET", nil)
	if err == nil {
		t.Fatal("expected a connection error")
	}
	if strings.Contains(err.Error(), "SECRET") {
		t.Errorf("error leaks the query string: %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "2", 2 * time.Second},
		{"padded", " 5 ", 5 * time.Second},
		{"negative", "-3", 0},
		{"garbage", "soon", 0},
		{"http date", now.Add(30 * time.Second).Format(http.TimeFormat), 30 * time.Second},
		{"past date", now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"capped", "86400", maxRetryAfter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.value, now); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{"empty body", "", ""},
		{"short body", "no such model", "no such model"},
		{"long ascii body", strings.Repeat("x", 500), strings.Repeat("x", 199) + "…"},
		{"long multibyte body", strings.Repeat("é", 150) + strings.Repeat("模", 150), strings.Repeat("é", 150) + strings.Repeat("模", 49) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &HTTPStatusError{StatusCode: 404, Status: "Not Found", Body: tt.body}
			msg := err.Error()
			want := "HTTP 404 Not Found"
			if tt.wantBody != "" {
				want += ": " + tt.wantBody
			}
			if msg != want {
				t.Errorf("Error() = %q, want %q", msg, want)
			}
			if !utf8.ValidString(msg) {
				t.Errorf("Error() is not valid UTF-8: %q", msg)
			}
			if err.RateLimited() {
				t.Error("404 is not rate limited")
			}
		})
	}
}
