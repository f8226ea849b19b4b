package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/gex-condor/internal/gex"
)

// Client fetches live exposure snapshots. Interface for testability.
type Client interface {
	FetchSnapshot(ctx context.Context, ticker string) (*gex.Snapshot, error)
}

// HTTPClient talks to the gexbot classic endpoint.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	retryCount int
	retryDelay time.Duration
	logger     *zap.Logger
}

// snapshotResponse is the classic gex_full payload. Strikes stays raw: the
// API has served both array-of-triples and array-of-objects encodings.
type snapshotResponse struct {
	Ticker    string          `json:"ticker"`
	Timestamp int64           `json:"timestamp"`
	Spot      float64         `json:"spot"`
	Strikes   json.RawMessage `json:"strikes"`
}

func NewClient(baseURL, apiKey string, ratePerSec int, timeout, retryDelay time.Duration, retryCount int, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec*2),
		retryCount: retryCount,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// FetchSnapshot downloads the current gex_full state for ticker and parses
// it into a snapshot.
func (c *HTTPClient) FetchSnapshot(ctx context.Context, ticker string) (*gex.Snapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/%s/classic/gex_full?key=%s", c.baseURL, ticker, c.apiKey)
	c.logger.Debug("fetching snapshot", zap.String("ticker", ticker))

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // Exponential backoff
			c.logger.Debug("retrying fetch", zap.Int("attempt", attempt), zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

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

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, ErrAuthFailed
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = ErrRateLimited
			continue
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}

		return parseSnapshot(body, ticker)
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func parseSnapshot(body []byte, ticker string) (*gex.Snapshot, error) {
	var resp snapshotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	points, err := gex.ParseStrikes(resp.Strikes)
	if err != nil {
		return nil, fmt.Errorf("parsing strikes: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s returned no strikes", gex.ErrMissingData, ticker)
	}

	symbol := resp.Ticker
	if symbol == "" {
		symbol = ticker
	}

	return &gex.Snapshot{
		Symbol:    symbol,
		Spot:      resp.Spot,
		Points:    points,
		Timestamp: time.Unix(resp.Timestamp, 0).UTC(),
	}, nil
}
