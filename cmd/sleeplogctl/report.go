package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/sleepstats"

	"github.com/spf13/cobra"
)

var (
	flagFrom string
	flagTo   string
)

var lastNightCmd = &cobra.Command{
	Use:   "last-night",
	Short: "Show the night that ended today",
	RunE:  runLastNight,
}

var averagesCmd = &cobra.Command{
	Use:   "averages",
	Short: "Average bed time, wake time, time in bed and morning feelings",
	RunE:  runAverages,
}

func init() {
	averagesCmd.Flags().StringVar(&flagFrom, "from", "", "Exclusive start date (YYYY-MM-DD)")
	averagesCmd.Flags().StringVar(&flagTo, "to", "", "Inclusive end date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(lastNightCmd, averagesCmd)
}

func runLastNight(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	l, err := svc.LastNightSleep(cmd.Context(), flagUser)
	if errors.Is(err, service.ErrNotFound) {
		fmt.Println("\n  No sleep log for last night.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println()
	printSleepLog(l)
	return nil
}

func runAverages(cmd *cobra.Command, _ []string) error {
	if flagFrom == "" && flagTo != "" {
		return errors.New("--to requires --from")
	}

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var avg sleepstats.SleepAverages
	if flagFrom == "" {
		if flagVerbose {
			fmt.Printf("\n  Using the default %d day window\n", svc.WindowDays())
		}
		avg, err = svc.Averages(cmd.Context(), flagUser)
	} else {
		var from, to time.Time
		if from, err = models.ParseDate(flagFrom); err != nil {
			return err
		}
		to = svc.Today()
		if flagTo != "" {
			if to, err = models.ParseDate(flagTo); err != nil {
				return err
			}
		}
		avg, err = svc.AveragesBetween(cmd.Context(), flagUser, from, to)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	printAverages(avg)
	if avg.Empty() {
		return nil
	}

	spread, err := svc.SpreadBetween(cmd.Context(), flagUser, avg.From, avg.To)
	if err != nil {
		return err
	}
	printSpread(spread)
	return nil
}

func printSleepLog(l models.SleepLog) {
	fmt.Printf("  Night of     %s\n", l.SleepDate.Format(models.DateLayout))
	fmt.Printf("  Bed          %s\n", l.BedTime.Format(models.LocalDateTimeLayout))
	fmt.Printf("  Wake         %s\n", l.WakeTime.Format(models.LocalDateTimeLayout))
	fmt.Printf("  In bed       %s\n", l.TimeInBed())
	fmt.Printf("  Feeling      %s\n", l.MorningFeeling)
}

func printAverages(a sleepstats.SleepAverages) {
	fmt.Printf("  Window       %s .. %s\n", a.From.Format(models.DateLayout), a.To.Format(models.DateLayout))
	if a.Empty() {
		fmt.Println("  No sleep logs in this window.")
		return
	}
	fmt.Printf("  In bed       %s\n", a.AverageTimeInBed)
	fmt.Printf("  Bed time     %s\n", a.AverageBedTime)
	fmt.Printf("  Wake time    %s\n", a.AverageWakeTime)
	for _, f := range models.MorningFeelings {
		if n, ok := a.MorningFeelingFrequencies[f]; ok {
			fmt.Printf("  %-12s %d\n", f, n)
		}
	}
}

func printSpread(s sleepstats.ScheduleSpread) {
	fmt.Printf("  Bed spread   %s (consistency %.2f)\n", s.BedTimeStdDev, s.BedTimeConsistency)
	fmt.Printf("  Wake spread  %s (consistency %.2f)\n", s.WakeTimeStdDev, s.WakeTimeConsistency)
}
