package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SecondsPerDay is the length of the 24-hour clock in seconds.
const SecondsPerDay = 24 * 60 * 60

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// LocalDateTimeLayout is the wire format for wall-clock timestamps without an offset.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// TimeOfDay is a clock reading in seconds since midnight, in [0, SecondsPerDay).
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay, wrapping values outside one day.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	s := (hour*3600 + minute*60 + second) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return TimeOfDay(s)
}

// TimeOfDayOf discards the date part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String formats t as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay parses HH:MM:SS or HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseDateTime accepts a local date-time (2006-01-02T15:04:05) or an RFC3339
// timestamp. An offset, if present, is dropped and the wall clock kept.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(LocalDateTimeLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return WallClock(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, want %s", s, LocalDateTimeLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatISODuration renders d as an ISO-8601 duration in the PTnHnMnS form.
// Hours are never folded into days: 30h is PT30H. Zero is PT0S.
func FormatISODuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	hours := int64(d / time.Hour)
	minutes := int64(d % time.Hour / time.Minute)
	rest := d % time.Minute

	var b strings.Builder
	b.WriteString("PT")
	if hours != 0 {
		fmt.Fprintf(&b, "%s%dH", sign, hours)
	}
	if minutes != 0 {
		fmt.Fprintf(&b, "%s%dM", sign, minutes)
	}
	if rest != 0 {
		b.WriteString(sign)
		b.WriteString(strconv.FormatInt(int64(rest/time.Second), 10))
		if ns := int64(rest % time.Second); ns != 0 {
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", ns), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}

var isoDurationRe = regexp.MustCompile(`^([-+]?)P(?:([-+]?\d+)D)?(?:T(?:([-+]?\d+)H)?(?:([-+]?\d+)M)?(?:([-+]?\d+)(?:[.,](\d{0,9}))?S)?)?$`)

// ParseISODuration parses the PnDTnHnMnS subset written by FormatISODuration.
// A day is taken as exactly 24 hours.
func ParseISODuration(s string) (time.Duration, error) {
	m := isoDurationRe.FindStringSubmatch(strings.ToUpper(s))
	if m == nil || (m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}
	if strings.HasSuffix(strings.ToUpper(s), "T") {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", s)
	}

	var d time.Duration
	units := []struct {
		raw  string
		unit time.Duration
	}{
		{m[2], 24 * time.Hour},
		{m[3], time.Hour},
		{m[4], time.Minute},
		{m[5], time.Second},
	}
	for _, u := range units {
		if u.raw == "" {
			continue
		}
		n, err := strconv.ParseInt(u.raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, err)
		}
		d += time.Duration(n) * u.unit
	}

	if frac := m[6]; frac != "" {
		ns, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", s, err)
		}
		if strings.HasPrefix(m[5], "-") {
			ns = -ns
		}
		d += time.Duration(ns)
	}

	if m[1] == "-" {
		d = -d
	}
	return d, nil
}
