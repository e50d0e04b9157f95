// Package validate checks which bookmarks still resolve. Requests run
// concurrently behind a semaphore and a shared rate limiter so a large
// collection doesn't hammer anyone's server.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// Config controls validation concurrency and timeouts.
type Config struct {
	// Concurrency is the maximum number of in-flight requests.
	Concurrency int

	// RequestsPerSecond caps the overall request rate across all workers.
	RequestsPerSecond float64

	// Timeout bounds each individual request.
	Timeout time.Duration

	// UserAgent is sent with every request. Some sites reject the Go
	// default outright.
	UserAgent string
}

// DefaultConfig returns settings polite enough for public sites.
func DefaultConfig() Config {
	return Config{
		Concurrency:       8,
		RequestsPerSecond: 10,
		Timeout:           10 * time.Second,
		UserAgent:         "linktidy/1.0 (+https://github.com/linktidy/linktidy)",
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %f", c.RequestsPerSecond)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Summary reports the outcome of a validation run.
type Summary struct {
	// Checked is the number of records examined.
	Checked int

	// Alive is the number of records that answered with a 2xx or 3xx.
	Alive int

	// Dead is the number of records that failed or answered 4xx/5xx.
	Dead int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Validator probes bookmark URLs over HTTP.
type Validator struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// New builds a Validator from the config. The config must be valid.
func New(cfg Config) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid validation config: %w", err)
	}
	return &Validator{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Concurrency),
	}, nil
}

// Run probes every record in place, setting Valid and StatusCode, and
// returns a summary. Records keep their positions; only the validation
// fields change. Cancelling the context stops the run early with the
// context's error.
func (v *Validator) Run(ctx context.Context, records []bookmark.Record) (*Summary, error) {
	start := time.Now()
	sem := semaphore.NewWeighted(int64(v.cfg.Concurrency))

	for i := range records {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("acquiring validation slot: %w", err)
		}
		go func(rec *bookmark.Record) {
			defer sem.Release(1)
			v.probe(ctx, rec)
		}(&records[i])
	}

	// Draining the semaphore waits for all workers.
	if err := sem.Acquire(ctx, int64(v.cfg.Concurrency)); err != nil {
		return nil, fmt.Errorf("waiting for validation workers: %w", err)
	}

	summary := &Summary{Checked: len(records), Elapsed: time.Since(start)}
	for i := range records {
		if records[i].Valid != nil && *records[i].Valid {
			summary.Alive++
		} else {
			summary.Dead++
		}
	}
	return summary, nil
}

// probe issues a HEAD request, falling back to GET since plenty of sites
// reject HEAD with 405 or drop it entirely.
func (v *Validator) probe(ctx context.Context, rec *bookmark.Record) {
	status, err := v.request(ctx, http.MethodHead, rec.URL)
	if err != nil || status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = v.request(ctx, http.MethodGet, rec.URL)
	}

	valid := err == nil && status >= 200 && status < 400
	rec.Valid = &valid
	if err == nil {
		rec.StatusCode = &status
	} else {
		rec.StatusCode = nil
	}
}

func (v *Validator) request(ctx context.Context, method, url string) (int, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", v.cfg.UserAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
