package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

const sleepLogColumns = `id, user_id, sleep_date, bed_time, wake_time, morning_feeling, created_at`

// InsertSleepLog inserts a sleep log (one per date per user).
func (db *DB) InsertSleepLog(ctx context.Context, l models.SleepLog) (models.SleepLog, error) {
	l.ID = uuid.New()
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO sleep_log (id, user_id, sleep_date, bed_time, wake_time, morning_feeling)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		l.ID, l.UserID, l.SleepDate, l.BedTime, l.WakeTime, string(l.MorningFeeling),
	).Scan(&l.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.SleepLog{}, ErrDuplicate
	}
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("inserting sleep log: %w", err)
	}
	return l, nil
}

// GetSleepLog retrieves the sleep log a user recorded for one date.
func (db *DB) GetSleepLog(ctx context.Context, userID int64, date time.Time) (models.SleepLog, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sleepLogColumns+`
		 FROM sleep_log
		 WHERE user_id = $1 AND sleep_date = $2`,
		userID, models.DateOf(date))

	l, err := scanSleepLog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SleepLog{}, ErrNotFound
	}
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("querying sleep log: %w", err)
	}
	return l, nil
}

// QuerySleepLogs retrieves sleep logs with from < sleep_date <= to.
func (db *DB) QuerySleepLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.SleepLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sleepLogColumns+`
		 FROM sleep_log
		 WHERE user_id = $1 AND sleep_date > $2 AND sleep_date <= $3
		 ORDER BY sleep_date DESC`,
		userID, models.DateOf(from), models.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("querying sleep logs: %w", err)
	}
	defer rows.Close()

	var result []models.SleepLog
	for rows.Next() {
		l, err := scanSleepLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func scanSleepLog(row pgx.Row) (models.SleepLog, error) {
	var l models.SleepLog
	var feeling string
	if err := row.Scan(&l.ID, &l.UserID, &l.SleepDate, &l.BedTime, &l.WakeTime, &feeling, &l.CreatedAt); err != nil {
		return models.SleepLog{}, err
	}
	l.MorningFeeling = models.MorningFeeling(feeling)
	return l, nil
}
