package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrWakeNotAfterBed is returned when a sleep log's wake time is not strictly after its bed time.
var ErrWakeNotAfterBed = errors.New("wake time must be after bed time")

// ErrInvalidMorningFeeling is returned for a morning feeling outside GOOD, OK, BAD.
var ErrInvalidMorningFeeling = errors.New("invalid morning feeling")

// SleepLog is one night of sleep for a user, attributed to the wake-up date.
// Bed and wake times are wall-clock times; their location is always UTC so that
// Hour/Minute/Second report the clock the user saw.
type SleepLog struct {
	ID             uuid.UUID
	UserID         int64
	SleepDate      time.Time
	BedTime        time.Time
	WakeTime       time.Time
	MorningFeeling MorningFeeling
	CreatedAt      time.Time
}

// NewSleepLog builds a validated sleep log. ID and CreatedAt are left for storage to assign.
func NewSleepLog(userID int64, bedTime, wakeTime time.Time, feeling MorningFeeling) (SleepLog, error) {
	bed := WallClock(bedTime)
	wake := WallClock(wakeTime)
	if !wake.After(bed) {
		return SleepLog{}, ErrWakeNotAfterBed
	}
	if !feeling.Valid() {
		return SleepLog{}, fmt.Errorf("%w: %q", ErrInvalidMorningFeeling, feeling)
	}
	return SleepLog{
		UserID:         userID,
		SleepDate:      DateOf(wake),
		BedTime:        bed,
		WakeTime:       wake,
		MorningFeeling: feeling,
	}, nil
}

// TimeInBed returns the time between going to bed and waking up.
func (l SleepLog) TimeInBed() time.Duration {
	return l.WakeTime.Sub(l.BedTime)
}

// WallClock re-expresses t's calendar and clock fields in UTC, dropping the offset.
// 23:30+02:00 becomes 23:30Z.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DateOf returns midnight UTC of t's calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
