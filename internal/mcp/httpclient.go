package mcp

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

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/sleepstats"
)

// HTTPClient implements DataSource by calling the SleepLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, userID int64, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(path, resp.StatusCode, body)
	}

	return body, nil
}

// statusError converts an error response back into the matching service sentinel.
func statusError(path string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var e api.ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", service.ErrNotFound, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", service.ErrInvalidInput, msg)
	default:
		return fmt.Errorf("httpclient: %s returned %d: %s", path, status, msg)
	}
}

func (c *HTTPClient) LastNightSleep(ctx context.Context, userID int64) (models.SleepLog, error) {
	body, err := c.get(ctx, "/api/sleep-log/last-night", userID, nil)
	if err != nil {
		return models.SleepLog{}, err
	}

	var resp api.SleepLogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.SleepLog{}, fmt.Errorf("httpclient: decode sleep log: %w", err)
	}
	l, err := resp.SleepLog(userID)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("httpclient: decode sleep log: %w", err)
	}
	return l, nil
}

func (c *HTTPClient) Averages(ctx context.Context, userID int64) (sleepstats.SleepAverages, error) {
	return c.averages(ctx, userID, nil)
}

func (c *HTTPClient) AveragesBetween(ctx context.Context, userID int64, from, to time.Time) (sleepstats.SleepAverages, error) {
	params := url.Values{}
	params.Set("from", from.Format(models.DateLayout))
	params.Set("to", to.Format(models.DateLayout))
	return c.averages(ctx, userID, params)
}

func (c *HTTPClient) averages(ctx context.Context, userID int64, params url.Values) (sleepstats.SleepAverages, error) {
	body, err := c.get(ctx, "/api/sleep-log/averages", userID, params)
	if err != nil {
		return sleepstats.SleepAverages{}, err
	}

	var resp api.SleepAveragesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("httpclient: decode averages: %w", err)
	}
	avg, err := resp.SleepAverages()
	if err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("httpclient: decode averages: %w", err)
	}
	return avg, nil
}
