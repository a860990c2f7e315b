package sleepstats

import (
	"math"
	"testing"
	"time"

	"github.com/claude/sleeplog/internal/models"
)

func TestSpreadEmpty(t *testing.T) {
	if got := Spread(nil); got != (ScheduleSpread{}) {
		t.Errorf("Spread(nil) = %+v, want zero value", got)
	}
}

func TestSpreadRegularSchedule(t *testing.T) {
	logs := []models.SleepLog{
		sleepLog(t, 10, 23, 0, 7, 0, models.MorningFeelingOK),
		sleepLog(t, 11, 23, 0, 7, 0, models.MorningFeelingGood),
		sleepLog(t, 12, 23, 0, 7, 0, models.MorningFeelingBad),
	}
	got := Spread(logs)

	if got.Nights != 3 {
		t.Errorf("Nights = %d, want 3", got.Nights)
	}
	if got.BedTimeStdDev != 0 || got.WakeTimeStdDev != 0 {
		t.Errorf("std dev = %v/%v, want 0/0", got.BedTimeStdDev, got.WakeTimeStdDev)
	}
	if math.Abs(got.BedTimeConsistency-1) > 1e-9 || math.Abs(got.WakeTimeConsistency-1) > 1e-9 {
		t.Errorf("consistency = %v/%v, want 1/1", got.BedTimeConsistency, got.WakeTimeConsistency)
	}
}

// TestSpreadAcrossMidnight verifies bed times either side of midnight spread
// as little as the same gap around noon.
func TestSpreadAcrossMidnight(t *testing.T) {
	midnight := Spread(bedTimesOnly(t, [2]int{23, 0}, [2]int{1, 0}))
	noon := Spread(bedTimesOnly(t, [2]int{11, 0}, [2]int{13, 0}))

	// Two points an hour either side of the mean: sqrt(-2 ln cos 15deg) of a day.
	if midnight.BedTimeStdDev < 59*time.Minute || midnight.BedTimeStdDev > 62*time.Minute {
		t.Errorf("BedTimeStdDev = %v, want about 1h", midnight.BedTimeStdDev)
	}
	if d := midnight.BedTimeStdDev - noon.BedTimeStdDev; d < -time.Second || d > time.Second {
		t.Errorf("midnight spread %v differs from noon spread %v", midnight.BedTimeStdDev, noon.BedTimeStdDev)
	}
	if midnight.BedTimeConsistency >= 1 || midnight.BedTimeConsistency < 0.96 {
		t.Errorf("BedTimeConsistency = %v, want cos(15deg)", midnight.BedTimeConsistency)
	}
}

func TestSpreadLeavesAveragesUnchanged(t *testing.T) {
	logs := []models.SleepLog{
		sleepLog(t, 17, 22, 45, 6, 30, models.MorningFeelingBad),
		sleepLog(t, 18, 0, 10, 8, 0, models.MorningFeelingOK),
	}
	before := Aggregate(logs, testFrom, testTo)
	_ = Spread(logs)
	after := Aggregate(logs, testFrom, testTo)
	if *before.AverageBedTime != *after.AverageBedTime || before.AverageTimeInBed != after.AverageTimeInBed {
		t.Errorf("averages changed: %+v vs %+v", before, after)
	}
}
