package models

import "strings"

// MorningFeeling is the subjective wake-up quality a user reports with a sleep log.
type MorningFeeling string

// Canonical morning feeling values.
const (
	MorningFeelingGood MorningFeeling = "GOOD"
	MorningFeelingOK   MorningFeeling = "OK"
	MorningFeelingBad  MorningFeeling = "BAD"
)

// MorningFeelings lists every valid category in display order.
var MorningFeelings = []MorningFeeling{MorningFeelingGood, MorningFeelingOK, MorningFeelingBad}

var morningFeelingMap = map[string]MorningFeeling{
	"good": MorningFeelingGood,
	"ok":   MorningFeelingOK,
	"bad":  MorningFeelingBad,
}

// ParseMorningFeeling maps a raw category name to its canonical value.
// Lookup ignores case and surrounding whitespace. Returns the canonical value
// and true if recognized, or the original string and false if unknown.
func ParseMorningFeeling(raw string) (MorningFeeling, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if f, ok := morningFeelingMap[lower]; ok {
		return f, true
	}
	return MorningFeeling(raw), false
}

// Valid reports whether f is one of the canonical categories.
func (f MorningFeeling) Valid() bool {
	switch f {
	case MorningFeelingGood, MorningFeelingOK, MorningFeelingBad:
		return true
	}
	return false
}
