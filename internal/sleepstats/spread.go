package sleepstats

import (
	"math"
	"time"

	"github.com/claude/sleeplog/internal/circular"
	"github.com/claude/sleeplog/internal/models"
)

// ScheduleSpread describes how regular bed and wake times were over a window.
// It is reported next to SleepAverages and does not feed into it.
type ScheduleSpread struct {
	Nights int
	// Circular standard deviation of the clock times.
	BedTimeStdDev  time.Duration
	WakeTimeStdDev time.Duration
	// Mean resultant length in [0, 1]; 1 means the same clock time every night.
	BedTimeConsistency  float64
	WakeTimeConsistency float64
}

// Spread measures the dispersion of bed and wake times in logs. An empty slice
// yields the zero value.
func Spread(logs []models.SleepLog) ScheduleSpread {
	if len(logs) == 0 {
		return ScheduleSpread{}
	}
	bed := make([]float64, len(logs))
	wake := make([]float64, len(logs))
	for i, l := range logs {
		bed[i] = float64(models.TimeOfDayOf(l.BedTime))
		wake[i] = float64(models.TimeOfDayOf(l.WakeTime))
	}
	return ScheduleSpread{
		Nights:              len(logs),
		BedTimeStdDev:       clockStdDev(bed),
		WakeTimeStdDev:      clockStdDev(wake),
		BedTimeConsistency:  circular.MeanResultantLength(bed, models.SecondsPerDay),
		WakeTimeConsistency: circular.MeanResultantLength(wake, models.SecondsPerDay),
	}
}

func clockStdDev(secs []float64) time.Duration {
	return time.Duration(math.Round(circular.StdDev(secs, models.SecondsPerDay))) * time.Second
}
