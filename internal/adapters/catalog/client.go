// Package catalog reads hotel properties from the upstream content API.
package catalog

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/domain"
)

const maxAttempts = 4

var (
	ErrNotFound     = fmt.Errorf("catalog: %w", domain.ErrNotFound)
	ErrUnauthorized = fmt.Errorf("catalog: %w", domain.ErrUnauthorized)
	ErrForbidden    = fmt.Errorf("catalog: forbidden: %w", domain.ErrUnauthorized)
)

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, errors.New("catalog: API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetProperty fetches one property. The legacy singular path is tried when
// the current one answers 404.
func (c *Client) GetProperty(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	for _, u := range []string{
		fmt.Sprintf("%s/properties/%d", c.base, id),
		fmt.Sprintf("%s/property/%d", c.base, id),
	} {
		err := c.getJSON(ctx, "property", u, &out)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return out, err
	}
	return nil, ErrNotFound
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 && !sleepCtx(ctx, lastWait(lastErr, attempt-1)) {
			return ctx.Err()
		}

		status, body, err := c.do(ctx, endpoint, url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		switch {
		case status == http.StatusNoContent:
			return nil
		case status >= 200 && status < 300:
			return json.Unmarshal(body.data, out)
		case status == http.StatusNotFound:
			return ErrNotFound
		case status == http.StatusUnauthorized:
			return ErrUnauthorized
		case status == http.StatusForbidden:
			return ErrForbidden
		case retryable(status):
			lastErr = &remoteError{status: status, wait: body.retryAfter}
		default:
			return fmt.Errorf("catalog: bad status %d: %s", status, strings.TrimSpace(string(body.data)))
		}
	}
	return lastErr
}

type response struct {
	data       []byte
	retryAfter time.Duration
}

func (c *Client) do(ctx context.Context, endpoint, url string) (int, response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, response{}, err
	}
	req.Header.Set("X-API-Key", c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotels-ingestor/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", endpoint, 0, time.Since(start))
		return 0, response{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

	limit := int64(4096)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		limit = 16 << 20
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return 0, response{}, err
	}
	return resp.StatusCode, response{data: data, retryAfter: retryAfter(resp.Header.Get("Retry-After"))}, nil
}

type remoteError struct {
	status int
	wait   time.Duration
}

func (e *remoteError) Error() string { return "catalog: remote " + strconv.Itoa(e.status) }

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// lastWait prefers the server's Retry-After over exponential backoff.
func lastWait(err error, attempt int) time.Duration {
	var re *remoteError
	if errors.As(err, &re) && re.wait > 0 {
		return re.wait
	}
	return backoff(attempt)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter accepts delta-seconds or an HTTP-date; anything else is 0.
func retryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms with up to 50% jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<attempt) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(float64(base)*0.5*float64(b[0])/255.0)
}
