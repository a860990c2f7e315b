package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
)

// Recorder stores one night. *service.SleepLogService records locally and
// RemoteClient sends to a running server.
type Recorder interface {
	CreateSleepLog(ctx context.Context, userID int64, req service.CreateSleepLogRequest) (models.SleepLog, error)
}

var (
	_ Recorder = (*service.SleepLogService)(nil)
	_ Recorder = (*RemoteClient)(nil)
)

// RemoteClient posts sleep logs to a SleepLog server over HTTP.
type RemoteClient struct {
	serverURL  string
	httpClient *http.Client
	backoff    time.Duration
}

// NewRemoteClient creates a client for the server at serverURL.
func NewRemoteClient(serverURL string) *RemoteClient {
	return &RemoteClient{
		serverURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// CreateSleepLog POSTs one night to /api/sleep-log.
// Transport failures and 5xx responses are retried up to 3 times with
// exponential backoff. 400 and 409 map to the service sentinels.
func (c *RemoteClient) CreateSleepLog(ctx context.Context, userID int64, req service.CreateSleepLogRequest) (models.SleepLog, error) {
	data, err := json.Marshal(api.CreateSleepLogRequest{
		BedTime:        req.BedTime.Format(models.LocalDateTimeLayout),
		WakeTime:       req.WakeTime.Format(models.LocalDateTimeLayout),
		MorningFeeling: string(req.MorningFeeling),
	})
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("marshaling sleep log: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff << uint(attempt-1)):
			case <-ctx.Done():
				return models.SleepLog{}, ctx.Err()
			}
		}

		status, body, err := c.post(ctx, userID, data)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case status == http.StatusCreated:
			var resp api.SleepLogResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return models.SleepLog{}, fmt.Errorf("decoding sleep log: %w", err)
			}
			return resp.SleepLog(userID)
		case status == http.StatusConflict:
			return models.SleepLog{}, fmt.Errorf("%w: %s", service.ErrDuplicate, errorMessage(body))
		case status == http.StatusBadRequest:
			return models.SleepLog{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, errorMessage(body))
		case status >= 500:
			lastErr = fmt.Errorf("server error (status %d): %s", status, errorMessage(body))
			continue
		default:
			return models.SleepLog{}, fmt.Errorf("unexpected status %d: %s", status, errorMessage(body))
		}
	}

	return models.SleepLog{}, fmt.Errorf("after 3 attempts: %w", lastErr)
}

func (c *RemoteClient) post(ctx context.Context, userID int64, data []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/sleep-log", bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func errorMessage(body []byte) string {
	var e api.ErrorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
