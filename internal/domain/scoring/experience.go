package scoring

import (
	"math"
	"time"

	"bid-match/internal/domain/profile"
)

// TotalYears converts employment intervals into whole years of experience:
// the sum of each interval's whole-month span, divided by 12 and rounded to
// the nearest integer. An open interval (nil end date) runs until now.
//
// Overlapping intervals are NOT merged; concurrent jobs double-count. An
// interval whose end precedes its start contributes negative months and is
// allowed to stand. Both are deliberate policy, not bugs to fix here.
func TotalYears(intervals []profile.ExperienceInterval) int {
	return TotalYearsAt(intervals, time.Now())
}

// TotalYearsAt is TotalYears with an explicit "now" for open intervals, so
// callers and tests get deterministic results.
func TotalYearsAt(intervals []profile.ExperienceInterval, now time.Time) int {
	months := 0
	for _, iv := range intervals {
		end := now
		if iv.EndDate != nil {
			end = *iv.EndDate
		}
		months += wholeMonths(iv.StartDate, end)
	}
	return int(math.Round(float64(months) / 12.0))
}

func wholeMonths(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}
