// Package fetch downloads wiki pages into the local page cache that runs
// read from.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipegraph/internal/config"
)

// ErrNotFound is returned for pages the wiki does not have.
var ErrNotFound = errors.New("page not found")

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FetchRPS),
	}
}

// PageURL is the article URL of a page title.
func (c *Client) PageURL(title string) (string, error) {
	base := strings.TrimRight(c.cfg.WikiBaseURL, "/") + "/w/"
	u, err := url.Parse(base + url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_")))
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Page downloads the rendered HTML of one page, retrying transient failures.
func (c *Client) Page(ctx context.Context, title string) ([]byte, error) {
	if err := c.cfg.Require("WIKI_BASE_URL", c.cfg.WikiBaseURL); err != nil {
		return nil, err
	}
	pageURL, err := c.PageURL(title)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		if err := c.limiter.WaitTurn(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		req.Header.Set("Accept", "text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, title)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				if err := sleepContext(ctx, backoff); err != nil {
					return nil, err
				}
				lastErr = fmt.Errorf("wiki status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("wiki error: page=%s status=%d", title, resp.StatusCode)
		}
		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("wiki request failed")
	}
	return nil, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
