// Package service holds the sleep log use cases shared by the HTTP, MCP and
// CLI front ends.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/sleepstats"
	"github.com/claude/sleeplog/internal/storage"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidInput wraps every request validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when the requested sleep log does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when the user already logged the night.
	ErrDuplicate = errors.New("already exists")
)

var validate = validator.New()

// CreateSleepLogRequest is the input for recording one night.
type CreateSleepLogRequest struct {
	BedTime        time.Time             `validate:"required"`
	WakeTime       time.Time             `validate:"required"`
	MorningFeeling models.MorningFeeling `validate:"required,oneof=GOOD OK BAD"`
}

// SleepLogService records sleep logs and reports on them.
type SleepLogService struct {
	repo       storage.Repository
	log        *slog.Logger
	now        func() time.Time
	windowDays int
}

// Option configures a SleepLogService.
type Option func(*SleepLogService)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *SleepLogService) { s.now = now }
}

// WithWindowDays sets the length of the rolling averages window.
func WithWindowDays(days int) Option {
	return func(s *SleepLogService) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// New creates a SleepLogService backed by repo.
func New(repo storage.Repository, log *slog.Logger, opts ...Option) *SleepLogService {
	s := &SleepLogService{
		repo:       repo,
		log:        log,
		now:        time.Now,
		windowDays: 30,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WindowDays returns the length of the default averages window.
func (s *SleepLogService) WindowDays() int { return s.windowDays }

// Today returns the current date by the service clock.
func (s *SleepLogService) Today() time.Time {
	return models.DateOf(s.now())
}

// Prepare validates req and builds the record CreateSleepLog would store.
func Prepare(userID int64, req CreateSleepLogRequest) (models.SleepLog, error) {
	if err := validate.Struct(req); err != nil {
		return models.SleepLog{}, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}
	l, err := models.NewSleepLog(userID, req.BedTime, req.WakeTime, req.MorningFeeling)
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return l, nil
}

// CreateSleepLog validates and stores one night for userID.
func (s *SleepLogService) CreateSleepLog(ctx context.Context, userID int64, req CreateSleepLogRequest) (models.SleepLog, error) {
	l, err := Prepare(userID, req)
	if err != nil {
		return models.SleepLog{}, err
	}

	stored, err := s.repo.InsertSleepLog(ctx, l)
	if errors.Is(err, storage.ErrDuplicate) {
		return models.SleepLog{}, fmt.Errorf("%w: sleep log already exists for user %d on %s",
			ErrDuplicate, userID, l.SleepDate.Format(models.DateLayout))
	}
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("saving sleep log: %w", err)
	}

	s.log.Info("sleep log created",
		"user_id", userID,
		"sleep_date", stored.SleepDate.Format(models.DateLayout),
		"time_in_bed", stored.TimeInBed().String(),
	)
	return stored, nil
}

// LastNightSleep returns the log whose wake-up falls on today.
func (s *SleepLogService) LastNightSleep(ctx context.Context, userID int64) (models.SleepLog, error) {
	today := s.Today()
	l, err := s.repo.GetSleepLog(ctx, userID, today)
	if errors.Is(err, storage.ErrNotFound) {
		return models.SleepLog{}, fmt.Errorf("%w: no sleep log found for user %d on %s",
			ErrNotFound, userID, today.Format(models.DateLayout))
	}
	if err != nil {
		return models.SleepLog{}, fmt.Errorf("loading last night: %w", err)
	}
	return l, nil
}

// Averages reports on the window (today - N days, today].
func (s *SleepLogService) Averages(ctx context.Context, userID int64) (sleepstats.SleepAverages, error) {
	to := s.Today()
	from := to.AddDate(0, 0, -s.windowDays)
	return s.aggregate(ctx, userID, from, to)
}

// AveragesBetween reports on the explicit window (from, to].
func (s *SleepLogService) AveragesBetween(ctx context.Context, userID int64, from, to time.Time) (sleepstats.SleepAverages, error) {
	from, to = models.DateOf(from), models.DateOf(to)
	if !from.Before(to) {
		return sleepstats.SleepAverages{}, fmt.Errorf("%w: from %s must be before to %s",
			ErrInvalidInput, from.Format(models.DateLayout), to.Format(models.DateLayout))
	}
	return s.aggregate(ctx, userID, from, to)
}

// SpreadBetween reports how regular bed and wake times were in (from, to].
func (s *SleepLogService) SpreadBetween(ctx context.Context, userID int64, from, to time.Time) (sleepstats.ScheduleSpread, error) {
	from, to = models.DateOf(from), models.DateOf(to)
	if !from.Before(to) {
		return sleepstats.ScheduleSpread{}, fmt.Errorf("%w: from %s must be before to %s",
			ErrInvalidInput, from.Format(models.DateLayout), to.Format(models.DateLayout))
	}
	logs, err := s.repo.QuerySleepLogs(ctx, userID, from, to)
	if err != nil {
		return sleepstats.ScheduleSpread{}, fmt.Errorf("loading sleep logs: %w", err)
	}
	return sleepstats.Spread(logs), nil
}

func (s *SleepLogService) aggregate(ctx context.Context, userID int64, from, to time.Time) (sleepstats.SleepAverages, error) {
	logs, err := s.repo.QuerySleepLogs(ctx, userID, from, to)
	if err != nil {
		return sleepstats.SleepAverages{}, fmt.Errorf("loading sleep logs: %w", err)
	}
	return sleepstats.Aggregate(logs, from, to), nil
}

// describeValidation turns validator errors into a short message naming each field.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
