package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/storage"
)

var fixedNow = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(repo, logger, service.WithClock(func() time.Time { return fixedNow }))
	return New(svc, logger)
}

func do(t *testing.T, s *Server, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

const lastNightBody = `{"bedTime":"2026-03-19T23:00:00","wakeTime":"2026-03-20T07:00:00","morningFeeling":"GOOD"}`

// TestHandleTest verifies the unauthenticated probe.
func TestHandleTest(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/test", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["testMessage"] != "Hello world!" {
		t.Errorf("testMessage = %q", got["testMessage"])
	}
}

func TestHandleHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateSleepLog(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sleep-log", "1", lastNightBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	got := decode[api.SleepLogResponse](t, rec)
	want := api.SleepLogResponse{
		SleepDate:      "2026-03-20",
		BedTime:        "2026-03-19T23:00:00",
		WakeTime:       "2026-03-20T07:00:00",
		TotalTimeInBed: "PT8H",
		MorningFeeling: "GOOD",
	}
	if got != want {
		t.Errorf("response = %+v, want %+v", got, want)
	}
}

// TestCreateSleepLogOffsetKeepsWallClock verifies RFC3339 input is stored as
// the clock the user saw.
func TestCreateSleepLogOffsetKeepsWallClock(t *testing.T) {
	s := newTestServer(t)
	body := `{"bedTime":"2026-03-19T23:30:00+02:00","wakeTime":"2026-03-20T07:00:00+02:00","morningFeeling":"ok"}`
	rec := do(t, s, http.MethodPost, "/api/sleep-log", "1", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	got := decode[api.SleepLogResponse](t, rec)
	if got.BedTime != "2026-03-19T23:30:00" || got.TotalTimeInBed != "PT7H30M" || got.MorningFeeling != "OK" {
		t.Errorf("response = %+v", got)
	}
}

func TestCreateSleepLogErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   string
		want   int
	}{
		{"missing user", "", lastNightBody, http.StatusBadRequest},
		{"bad user", "x", lastNightBody, http.StatusBadRequest},
		{"bad JSON", "1", `{"bedTime":`, http.StatusBadRequest},
		{"bad time", "1", `{"bedTime":"yesterday","wakeTime":"2026-03-20T07:00:00","morningFeeling":"GOOD"}`, http.StatusBadRequest},
		{"missing feeling", "1", `{"bedTime":"2026-03-19T23:00:00","wakeTime":"2026-03-20T07:00:00"}`, http.StatusBadRequest},
		{"unknown feeling", "1", `{"bedTime":"2026-03-19T23:00:00","wakeTime":"2026-03-20T07:00:00","morningFeeling":"MEH"}`, http.StatusBadRequest},
		{"wake before bed", "1", `{"bedTime":"2026-03-20T07:00:00","wakeTime":"2026-03-19T23:00:00","morningFeeling":"GOOD"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t), http.MethodPost, "/api/sleep-log", tt.userID, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body)
			}
			if got := decode[api.ErrorResponse](t, rec); got.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestCreateSleepLogDuplicate(t *testing.T) {
	s := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/api/sleep-log", "1", lastNightBody); rec.Code != http.StatusCreated {
		t.Fatalf("first insert status = %d", rec.Code)
	}
	rec := do(t, s, http.MethodPost, "/api/sleep-log", "1", lastNightBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	got := decode[api.ErrorResponse](t, rec)
	if !strings.Contains(got.Error, "sleep log already exists for user 1 on 2026-03-20") {
		t.Errorf("error = %q", got.Error)
	}
}

func TestLastNight(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sleep-log/last-night", "1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty: status = %d, want 404", rec.Code)
	}
	if got := decode[api.ErrorResponse](t, rec); !strings.Contains(got.Error, "no sleep log found") {
		t.Errorf("error = %q", got.Error)
	}

	do(t, s, http.MethodPost, "/api/sleep-log", "1", lastNightBody)
	rec = do(t, s, http.MethodGet, "/api/sleep-log/last-night", "1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[api.SleepLogResponse](t, rec); got.SleepDate != "2026-03-20" {
		t.Errorf("sleepDate = %q", got.SleepDate)
	}

	if rec := do(t, s, http.MethodGet, "/api/sleep-log/last-night", "2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("other user: status = %d, want 404", rec.Code)
	}
}

// TestAveragesEmpty verifies the JSON shape for a window with no logs.
func TestAveragesEmpty(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/sleep-log/averages", "1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"from":                      `"2026-02-18"`,
		"to":                        `"2026-03-20"`,
		"averageTotalTimeInBed":     `"PT0S"`,
		"averageBedTime":            `null`,
		"averageWakeTime":           `null`,
		"morningFeelingFrequencies": `{}`,
	}
	for k, v := range want {
		if got := string(raw[k]); got != v {
			t.Errorf("%s = %s, want %s", k, got, v)
		}
	}
}

func TestAverages(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"bedTime":"2026-03-18T23:00:00","wakeTime":"2026-03-19T07:00:00","morningFeeling":"GOOD"}`,
		`{"bedTime":"2026-03-19T23:30:00","wakeTime":"2026-03-20T07:30:00","morningFeeling":"OK"}`,
	} {
		if rec := do(t, s, http.MethodPost, "/api/sleep-log", "1", body); rec.Code != http.StatusCreated {
			t.Fatalf("insert status = %d: %s", rec.Code, rec.Body)
		}
	}

	rec := do(t, s, http.MethodGet, "/api/sleep-log/averages", "1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[api.SleepAveragesResponse](t, rec)
	if got.AverageTotalTimeInBed != "PT8H" {
		t.Errorf("averageTotalTimeInBed = %q, want PT8H", got.AverageTotalTimeInBed)
	}
	if got.AverageBedTime == nil || got.AverageBedTime.String() != "23:15:00" {
		t.Errorf("averageBedTime = %v, want 23:15:00", got.AverageBedTime)
	}
	if got.AverageWakeTime == nil || got.AverageWakeTime.String() != "07:15:00" {
		t.Errorf("averageWakeTime = %v, want 07:15:00", got.AverageWakeTime)
	}
	if got.MorningFeelingFrequencies["GOOD"] != 1 || got.MorningFeelingFrequencies["OK"] != 1 {
		t.Errorf("frequencies = %v", got.MorningFeelingFrequencies)
	}
	if _, ok := got.MorningFeelingFrequencies["BAD"]; ok {
		t.Error("BAD present, want absent")
	}
}

func TestAveragesExplicitRange(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/api/sleep-log", "1",
		`{"bedTime":"2026-03-18T23:00:00","wakeTime":"2026-03-19T07:00:00","morningFeeling":"GOOD"}`)
	do(t, s, http.MethodPost, "/api/sleep-log", "1", lastNightBody)

	rec := do(t, s, http.MethodGet, "/api/sleep-log/averages?from=2026-03-18&to=2026-03-19", "1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	got := decode[api.SleepAveragesResponse](t, rec)
	if got.From != "2026-03-18" || got.To != "2026-03-19" {
		t.Errorf("range = %s..%s", got.From, got.To)
	}
	if len(got.MorningFeelingFrequencies) != 1 || got.MorningFeelingFrequencies["GOOD"] != 1 {
		t.Errorf("frequencies = %v, want only the Mar 19 night", got.MorningFeelingFrequencies)
	}

	for _, q := range []string{"?from=yesterday", "?to=2026-03-19", "?from=2026-03-19&to=2026-03-18"} {
		if rec := do(t, s, http.MethodGet, "/api/sleep-log/averages"+q, "1", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}
