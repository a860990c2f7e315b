package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/google/uuid"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Timestamps are stored as fixed-width text so lexical order matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000"

// SQLiteStore is a single-file Repository for local use and tests.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the schema.
// The special path ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertSleepLog inserts a sleep log (one per date per user).
func (s *SQLiteStore) InsertSleepLog(ctx context.Context, l models.SleepLog) (models.SleepLog, error) {
	l.ID = uuid.New()
	l.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sleep_log (id, user_id, sleep_date, bed_time, wake_time, morning_feeling, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, sleep_date) DO NOTHING`,
		l.ID.String(), l.UserID,
		l.SleepDate.Format(models.DateLayout),
		l.BedTime.Format(sqliteTimeLayout),
		l.WakeTime.Format(sqliteTimeLayout),
		string(l.MorningFeeling),
		l.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("inserting sleep log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("inserting sleep log: %w", err)
	}
	if n == 0 {
		return models.SleepLog{}, ErrDuplicate
	}
	return l, nil
}

// GetSleepLog retrieves the sleep log a user recorded for one date.
func (s *SQLiteStore) GetSleepLog(ctx context.Context, userID int64, date time.Time) (models.SleepLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sleepLogColumns+`
		 FROM sleep_log
		 WHERE user_id = ? AND sleep_date = ?`,
		userID, date.Format(models.DateLayout))

	l, err := scanSQLiteSleepLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SleepLog{}, ErrNotFound
	}
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("querying sleep log: %w", err)
	}
	return l, nil
}

// QuerySleepLogs retrieves sleep logs with from < sleep_date <= to.
func (s *SQLiteStore) QuerySleepLogs(ctx context.Context, userID int64, from, to time.Time) ([]models.SleepLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sleepLogColumns+`
		 FROM sleep_log
		 WHERE user_id = ? AND sleep_date > ? AND sleep_date <= ?
		 ORDER BY sleep_date DESC`,
		userID, from.Format(models.DateLayout), to.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying sleep logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.SleepLog
	for rows.Next() {
		l, err := scanSQLiteSleepLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sleep log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSleepLog(row rowScanner) (models.SleepLog, error) {
	var l models.SleepLog
	var id, date, bed, wake, feeling, created string
	if err := row.Scan(&id, &l.UserID, &date, &bed, &wake, &feeling, &created); err != nil {
		return models.SleepLog{}, err
	}

	var err error
	if l.ID, err = uuid.Parse(id); err != nil {
		return models.SleepLog{}, fmt.Errorf("parsing id %q: %w", id, err)
	}
	if l.SleepDate, err = time.Parse(models.DateLayout, date); err != nil {
		return models.SleepLog{}, fmt.Errorf("parsing sleep_date %q: %w", date, err)
	}
	if l.BedTime, err = time.Parse(sqliteTimeLayout, bed); err != nil {
		return models.SleepLog{}, fmt.Errorf("parsing bed_time %q: %w", bed, err)
	}
	if l.WakeTime, err = time.Parse(sqliteTimeLayout, wake); err != nil {
		return models.SleepLog{}, fmt.Errorf("parsing wake_time %q: %w", wake, err)
	}
	if l.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
		return models.SleepLog{}, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	l.MorningFeeling = models.MorningFeeling(feeling)
	return l, nil
}
