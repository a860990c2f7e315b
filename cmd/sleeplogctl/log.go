package main

import (
	"fmt"

	"github.com/claude/sleeplog/internal/models"
	"github.com/claude/sleeplog/internal/service"

	"github.com/spf13/cobra"
)

var (
	flagBed     string
	flagWake    string
	flagFeeling string
)

var logCmd = &cobra.Command{
	Use:     "log",
	Short:   "Record one night",
	Example: `  sleeplogctl log --bed 2026-03-19T23:15:00 --wake 2026-03-20T07:00:00 --feeling good`,
	RunE:    runLog,
}

func init() {
	logCmd.Flags().StringVar(&flagBed, "bed", "", "Bed time (2006-01-02T15:04:05)")
	logCmd.Flags().StringVar(&flagWake, "wake", "", "Wake time (2006-01-02T15:04:05)")
	logCmd.Flags().StringVar(&flagFeeling, "feeling", "", "Morning feeling: GOOD, OK or BAD")
	_ = logCmd.MarkFlagRequired("bed")
	_ = logCmd.MarkFlagRequired("wake")
	_ = logCmd.MarkFlagRequired("feeling")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	bed, err := models.ParseDateTime(flagBed)
	if err != nil {
		return fmt.Errorf("--bed: %w", err)
	}
	wake, err := models.ParseDateTime(flagWake)
	if err != nil {
		return fmt.Errorf("--wake: %w", err)
	}
	feeling, _ := models.ParseMorningFeeling(flagFeeling)

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	l, err := svc.CreateSleepLog(cmd.Context(), flagUser, service.CreateSleepLogRequest{
		BedTime:        bed,
		WakeTime:       wake,
		MorningFeeling: feeling,
	})
	if err != nil {
		return err
	}
	fmt.Println()
	printSleepLog(l)
	return nil
}
