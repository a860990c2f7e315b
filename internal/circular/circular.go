// Package circular computes statistics of values on a periodic domain such as
// clock times, compass headings or days of the week.
//
// Each value is placed on the unit circle and the centroid of those points is
// converted back to the domain. An arithmetic mean of the raw values would put
// the average of 23:00 and 01:00 at noon.
package circular

import (
	"math"

	"github.com/claude/sleeplog/internal/models"
)

// degenerateR is the resultant length below which the centroid is treated as
// the origin. Antipodal inputs such as 06:00 and 18:00 leave a residue of
// about 1e-16 after cancellation.
const degenerateR = 1e-9

// resultant returns the mean cosine and mean sine of values mapped onto a circle of the given period.
func resultant(values []float64, period float64) (cosAvg, sinAvg float64) {
	var sinSum, cosSum float64
	for _, v := range values {
		rad := v / period * 2 * math.Pi
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	n := float64(len(values))
	return cosSum / n, sinSum / n
}

// Mean returns the circular mean of values in [0, period). ok is false for
// empty input, where no mean exists.
//
// When the points cancel out (the mean resultant length is effectively zero)
// every direction is equally central; Mean then returns 0.
func Mean(values []float64, period float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	cosAvg, sinAvg := resultant(values, period)
	if math.Hypot(cosAvg, sinAvg) < degenerateR {
		return 0, true
	}

	rad := math.Atan2(sinAvg, cosAvg)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	mean = rad / (2 * math.Pi) * period
	if mean >= period {
		mean -= period
	}
	return mean, true
}

// MeanResultantLength returns R in [0, 1]: 1 when all values coincide, 0 when
// they are spread evenly around the circle. Empty input yields 0.
func MeanResultantLength(values []float64, period float64) float64 {
	if len(values) == 0 {
		return 0
	}
	cosAvg, sinAvg := resultant(values, period)
	return math.Min(math.Hypot(cosAvg, sinAvg), 1)
}

// StdDev returns the circular standard deviation sqrt(-2 ln R) expressed in
// the units of period. Fully dispersed input is capped at period/2.
func StdDev(values []float64, period float64) float64 {
	if len(values) == 0 {
		return 0
	}
	r := MeanResultantLength(values, period)
	if r < degenerateR {
		return period / 2
	}
	std := math.Sqrt(-2*math.Log(r)) / (2 * math.Pi) * period
	return math.Min(std, period/2)
}

// MeanTimeOfDay averages clock times on the 24-hour circle, rounding to the
// nearest second. ok is false for empty input.
func MeanTimeOfDay(times []models.TimeOfDay) (models.TimeOfDay, bool) {
	secs := make([]float64, len(times))
	for i, t := range times {
		secs[i] = float64(t)
	}
	mean, ok := Mean(secs, models.SecondsPerDay)
	if !ok {
		return 0, false
	}
	return models.TimeOfDay(int64(math.Round(mean)) % models.SecondsPerDay), true
}
