package storage

import (
	"context"
	"errors"
	"time"

	"github.com/claude/sleeplog/internal/models"
)

// ErrDuplicate is returned when a user already has a sleep log for the date.
var ErrDuplicate = errors.New("sleep log already exists")

// ErrNotFound is returned when no sleep log matches a lookup.
var ErrNotFound = errors.New("sleep log not found")

// Repository persists sleep logs. Both *DB (PostgreSQL) and *SQLiteStore satisfy it.
type Repository interface {
	// InsertSleepLog stores l with a freshly assigned ID and returns the stored row.
	// A second log for the same user and sleep date fails with ErrDuplicate.
	InsertSleepLog(ctx context.Context, l models.SleepLog) (models.SleepLog, error)
	// GetSleepLog returns the user's log attributed to date, or ErrNotFound.
	GetSleepLog(ctx context.Context, userID int64, date time.Time) (models.SleepLog, error)
	// QuerySleepLogs returns the user's logs with from < sleep_date <= to, newest first.
	QuerySleepLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.SleepLog, error)
	Close() error
}

// Compile-time checks.
var (
	_ Repository = (*DB)(nil)
	_ Repository = (*SQLiteStore)(nil)
)
