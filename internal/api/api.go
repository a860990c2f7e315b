// Package api defines the JSON bodies exchanged over the REST interface.
package api

import (
	"fmt"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/sleepstats"
)

// CreateSleepLogRequest is the body of POST /api/sleep-log. Times are local
// date-times (2006-01-02T15:04:05); RFC3339 is accepted and its offset dropped.
type CreateSleepLogRequest struct {
	BedTime        string `json:"bedTime"`
	WakeTime       string `json:"wakeTime"`
	MorningFeeling string `json:"morningFeeling"`
}

// SleepLogResponse is one stored night.
type SleepLogResponse struct {
	SleepDate      string                `json:"sleepDate"`
	BedTime        string                `json:"bedTime"`
	WakeTime       string                `json:"wakeTime"`
	TotalTimeInBed string                `json:"totalTimeInBed"`
	MorningFeeling models.MorningFeeling `json:"morningFeeling"`
}

// SleepAveragesResponse summarizes the window (from, to].
type SleepAveragesResponse struct {
	From                      string                          `json:"from"`
	To                        string                          `json:"to"`
	AverageTotalTimeInBed     string                          `json:"averageTotalTimeInBed"`
	AverageBedTime            *models.TimeOfDay               `json:"averageBedTime"`
	AverageWakeTime           *models.TimeOfDay               `json:"averageWakeTime"`
	MorningFeelingFrequencies map[models.MorningFeeling]int64 `json:"morningFeelingFrequencies"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Times parses the bed and wake times of r.
func (r CreateSleepLogRequest) Times() (bed, wake time.Time, err error) {
	if r.BedTime != "" {
		if bed, err = models.ParseDateTime(r.BedTime); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bedTime: %w", err)
		}
	}
	if r.WakeTime != "" {
		if wake, err = models.ParseDateTime(r.WakeTime); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("wakeTime: %w", err)
		}
	}
	return bed, wake, nil
}

// Feeling returns the canonical morning feeling, or the raw value when it is
// not recognized so that validation can report it.
func (r CreateSleepLogRequest) Feeling() models.MorningFeeling {
	f, _ := models.ParseMorningFeeling(r.MorningFeeling)
	return f
}

// NewSleepLogResponse renders l.
func NewSleepLogResponse(l models.SleepLog) SleepLogResponse {
	return SleepLogResponse{
		SleepDate:      l.SleepDate.Format(models.DateLayout),
		BedTime:        l.BedTime.Format(models.LocalDateTimeLayout),
		WakeTime:       l.WakeTime.Format(models.LocalDateTimeLayout),
		TotalTimeInBed: models.FormatISODuration(l.TimeInBed()),
		MorningFeeling: l.MorningFeeling,
	}
}

// SleepLog parses r back into a record. ID and CreatedAt are not carried.
func (r SleepLogResponse) SleepLog(userID int64) (models.SleepLog, error) {
	bed, err := models.ParseDateTime(r.BedTime)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("bedTime: %w", err)
	}
	wake, err := models.ParseDateTime(r.WakeTime)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("wakeTime: %w", err)
	}
	return models.NewSleepLog(userID, bed, wake, r.MorningFeeling)
}

// NewSleepAveragesResponse renders a.
func NewSleepAveragesResponse(a sleepstats.SleepAverages) SleepAveragesResponse {
	freq := a.MorningFeelingFrequencies
	if freq == nil {
		freq = map[models.MorningFeeling]int64{}
	}
	return SleepAveragesResponse{
		From:                      a.From.Format(models.DateLayout),
		To:                        a.To.Format(models.DateLayout),
		AverageTotalTimeInBed:     models.FormatISODuration(a.AverageTimeInBed),
		AverageBedTime:            a.AverageBedTime,
		AverageWakeTime:           a.AverageWakeTime,
		MorningFeelingFrequencies: freq,
	}
}

// SleepAverages parses r back into the aggregate.
func (r SleepAveragesResponse) SleepAverages() (sleepstats.SleepAverages, error) {
	from, err := models.ParseDate(r.From)
	if err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("from: %w", err)
	}
	to, err := models.ParseDate(r.To)
	if err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("to: %w", err)
	}
	inBed, err := models.ParseISODuration(r.AverageTotalTimeInBed)
	if err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("averageTotalTimeInBed: %w", err)
	}
	freq := r.MorningFeelingFrequencies
	if freq == nil {
		freq = map[models.MorningFeeling]int64{}
	}
	return sleepstats.SleepAverages{
		From:                      from,
		To:                        to,
		AverageTimeInBed:          inBed,
		AverageBedTime:            r.AverageBedTime,
		AverageWakeTime:           r.AverageWakeTime,
		MorningFeelingFrequencies: freq,
	}, nil
}
