package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/sleeplog/internal/api"
	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/sleepstats"
	"github.com/mark3labs/mcp-go/mcp"
)

// dateRange parses optional from/to dates. ok is false when both are empty.
// A lone from runs to today.
func dateRange(fromStr, toStr string) (from, to time.Time, ok bool, err error) {
	if fromStr == "" && toStr == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if fromStr == "" {
		return time.Time{}, time.Time{}, false, errors.New("to requires from")
	}
	if from, err = parseFlexDate(fromStr); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if toStr == "" {
		return from, models.DateOf(time.Now()), true, nil
	}
	if to, err = parseFlexDate(toStr); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return from, to, true, nil
}

func parseFlexDate(s string) (time.Time, error) {
	if t, err := models.ParseDate(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return models.DateOf(t), nil
}

var toolGetLastNightSleep = mcp.NewTool("get_last_night_sleep",
	mcp.WithDescription("Get the sleep log for the night that ended today: bed time, wake time, total time in bed (ISO 8601 duration) and morning feeling."),
)

// sleepAveragesTool describes get_sleep_averages. windowDays is the default
// window length, or 0 when the data source does not expose it.
func sleepAveragesTool(windowDays int) mcp.Tool {
	window := "the server's configured window"
	if windowDays > 0 {
		window = fmt.Sprintf("the last %d days", windowDays)
	}
	return mcp.NewTool("get_sleep_averages",
		mcp.WithDescription("Average bed time, wake time and time in bed plus morning feeling counts. Bed and wake times are averaged on the 24-hour clock, so 23:00 and 01:00 average to 00:00. Defaults to "+window+"."),
		mcp.WithString("from", mcp.Description("Exclusive start date (YYYY-MM-DD). Defaults to the start of "+window+".")),
		mcp.WithString("to", mcp.Description("Inclusive end date (YYYY-MM-DD). Defaults to today.")),
	)
}

// windowDaysOf returns the default averages window of ds, or 0 when unknown.
func windowDaysOf(ds DataSource) int {
	if w, ok := ds.(interface{ WindowDays() int }); ok {
		return w.WindowDays()
	}
	return 0
}

func (h *handlers) getLastNightSleep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	l, err := h.ds.LastNightSleep(ctx, uid)
	if errors.Is(err, service.ErrNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		h.log.Error("mcp get_last_night_sleep", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(api.NewSleepLogResponse(l))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSleepAverages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, to, explicit, err := dateRange(req.GetString("from", ""), req.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date range: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	var avg sleepstats.SleepAverages
	if explicit {
		avg, err = h.ds.AveragesBetween(ctx, uid, from, to)
	} else {
		avg, err = h.ds.Averages(ctx, uid)
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		h.log.Error("mcp get_sleep_averages", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(api.NewSleepAveragesResponse(avg))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
