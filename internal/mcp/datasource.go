package mcp

import (
	"context"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/sleepstats"
)

// DataSource abstracts the data layer for MCP tools. Both *service.SleepLogService
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	LastNightSleep(ctx context.Context, userID int64) (models.SleepLog, error)
	Averages(ctx context.Context, userID int64) (sleepstats.SleepAverages, error)
	AveragesBetween(ctx context.Context, userID int64, from, to time.Time) (sleepstats.SleepAverages, error)
}

// Compile-time check: *service.SleepLogService satisfies DataSource.
var _ DataSource = (*service.SleepLogService)(nil)
