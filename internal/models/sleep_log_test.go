package models

import (
	"errors"
	"testing"
	"time"
)

// TestNewSleepLogValid verifies the record is attributed to the wake-up date,
// not the date the user went to bed.
func TestNewSleepLogValid(t *testing.T) {
	bed := time.Date(2026, 2, 19, 23, 30, 0, 0, time.UTC)
	wake := time.Date(2026, 2, 20, 7, 0, 0, 0, time.UTC)

	log, err := NewSleepLog(1, bed, wake, MorningFeelingGood)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC); !log.SleepDate.Equal(want) {
		t.Errorf("SleepDate = %v, want %v", log.SleepDate, want)
	}
	if got := log.TimeInBed(); got != 7*time.Hour+30*time.Minute {
		t.Errorf("TimeInBed = %v, want 7h30m", got)
	}
	if log.UserID != 1 {
		t.Errorf("UserID = %d, want 1", log.UserID)
	}
}

// TestNewSleepLogWakeNotAfterBed verifies both reversed and equal timestamps are rejected.
func TestNewSleepLogWakeNotAfterBed(t *testing.T) {
	bed := time.Date(2026, 2, 19, 23, 30, 0, 0, time.UTC)
	wake := time.Date(2026, 2, 20, 7, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		bed, wake time.Time
	}{
		{"reversed", wake, bed},
		{"equal", bed, bed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSleepLog(1, tc.bed, tc.wake, MorningFeelingOK)
			if !errors.Is(err, ErrWakeNotAfterBed) {
				t.Fatalf("err = %v, want ErrWakeNotAfterBed", err)
			}
			if err.Error() != "wake time must be after bed time" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestNewSleepLogInvalidFeeling(t *testing.T) {
	bed := time.Date(2026, 2, 19, 23, 0, 0, 0, time.UTC)
	_, err := NewSleepLog(1, bed, bed.Add(8*time.Hour), MorningFeeling("GREAT"))
	if !errors.Is(err, ErrInvalidMorningFeeling) {
		t.Fatalf("err = %v, want ErrInvalidMorningFeeling", err)
	}
}

// TestNewSleepLogKeepsWallClock verifies an offset timestamp keeps the clock
// reading the user saw rather than being shifted to UTC.
func TestNewSleepLogKeepsWallClock(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	bed := time.Date(2026, 2, 19, 23, 30, 0, 0, cet)
	wake := time.Date(2026, 2, 20, 0, 30, 0, 0, cet)

	log, err := NewSleepLog(1, bed, wake, MorningFeelingBad)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.BedTime.Hour() != 23 || log.BedTime.Location() != time.UTC {
		t.Errorf("BedTime = %v, want 23:30 UTC wall clock", log.BedTime)
	}
	if log.SleepDate.Day() != 20 {
		t.Errorf("SleepDate = %v, want day 20", log.SleepDate)
	}
}

// TestParseMorningFeeling verifies lookup ignores case and whitespace and
// returns unknown values unchanged.
func TestParseMorningFeeling(t *testing.T) {
	cases := []struct {
		input string
		want  MorningFeeling
		known bool
	}{
		{"GOOD", MorningFeelingGood, true},
		{"ok", MorningFeelingOK, true},
		{"  Bad ", MorningFeelingBad, true},
		{"meh", MorningFeeling("meh"), false},
		{"", MorningFeeling(""), false},
	}
	for _, tc := range cases {
		got, known := ParseMorningFeeling(tc.input)
		if known != tc.known {
			t.Errorf("ParseMorningFeeling(%q) known = %v, want %v", tc.input, known, tc.known)
		}
		if got != tc.want {
			t.Errorf("ParseMorningFeeling(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
