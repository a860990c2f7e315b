// Package sleepstats aggregates sleep logs into rolling averages.
//
// Time in bed is a linear quantity and is averaged arithmetically. Bed and
// wake times live on the 24-hour clock and are averaged with circular
// statistics. The two kinds of average are computed independently, so
// AverageWakeTime - AverageBedTime need not equal AverageTimeInBed; the gap
// widens as the schedule gets less regular.
package sleepstats

import (
	"time"

	"github.com/claude/sleeplog/internal/circular"
	"github.com/claude/sleeplog/internal/models"
)

// SleepAverages summarizes the sleep logs of one reporting window.
// From is exclusive and To inclusive; both are echoed from the caller.
type SleepAverages struct {
	From                      time.Time
	To                        time.Time
	AverageTimeInBed          time.Duration
	AverageBedTime            *models.TimeOfDay
	AverageWakeTime           *models.TimeOfDay
	MorningFeelingFrequencies map[models.MorningFeeling]int64
}

// Empty reports whether the averages were computed from no logs.
func (a SleepAverages) Empty() bool {
	return a.AverageBedTime == nil
}

// Aggregate computes the averages of logs. The caller selects the logs for the
// window; Aggregate does not filter by from/to. Order of logs is irrelevant.
//
// An empty slice yields zero time in bed, nil clock times and an empty
// frequency map.
func Aggregate(logs []models.SleepLog, from, to time.Time) SleepAverages {
	avg := SleepAverages{
		From:                      from,
		To:                        to,
		MorningFeelingFrequencies: map[models.MorningFeeling]int64{},
	}
	if len(logs) == 0 {
		return avg
	}

	avg.AverageTimeInBed = averageTimeInBed(logs)
	avg.AverageBedTime = averageClockTime(logs, func(l models.SleepLog) time.Time { return l.BedTime })
	avg.AverageWakeTime = averageClockTime(logs, func(l models.SleepLog) time.Time { return l.WakeTime })
	for _, l := range logs {
		avg.MorningFeelingFrequencies[l.MorningFeeling]++
	}
	return avg
}

func averageTimeInBed(logs []models.SleepLog) time.Duration {
	var total time.Duration
	for _, l := range logs {
		total += l.TimeInBed()
	}
	return total / time.Duration(len(logs))
}

func averageClockTime(logs []models.SleepLog, pick func(models.SleepLog) time.Time) *models.TimeOfDay {
	times := make([]models.TimeOfDay, len(logs))
	for i, l := range logs {
		times[i] = models.TimeOfDayOf(pick(l))
	}
	mean, ok := circular.MeanTimeOfDay(times)
	if !ok {
		return nil
	}
	return &mean
}
