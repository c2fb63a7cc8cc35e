package scoring

import (
	"testing"
	"time"

	"bid-match/internal/domain/profile"
)

func TestTotalYearsAt_ClosedIntervals(t *testing.T) {
	intervals := []profile.ExperienceInterval{
		{StartDate: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2020, time.January, 1)},
		{StartDate: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2022, time.July, 1)},
	}
	// 24 + 18 months = 42 -> 3.5 years -> rounds to 4.
	if got := TotalYearsAt(intervals, testNow); got != 4 {
		t.Fatalf("expected 4 years, got %d", got)
	}
}

func TestTotalYearsAt_OpenIntervalRunsUntilNow(t *testing.T) {
	intervals := []profile.ExperienceInterval{
		{StartDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)},
	}
	if got := TotalYearsAt(intervals, testNow); got != 3 {
		t.Fatalf("expected 3 years for open interval, got %d", got)
	}
}

func TestTotalYearsAt_OverlapsDoubleCount(t *testing.T) {
	// Two fully concurrent two-year jobs count twice. Documented policy.
	intervals := []profile.ExperienceInterval{
		{StartDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2022, time.January, 1)},
		{StartDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2022, time.January, 1)},
	}
	if got := TotalYearsAt(intervals, testNow); got != 4 {
		t.Fatalf("expected 4 years from double-counted overlap, got %d", got)
	}
}

func TestTotalYearsAt_InvertedIntervalContributesNegative(t *testing.T) {
	intervals := []profile.ExperienceInterval{
		{StartDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2023, time.January, 1)},
		{StartDate: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2021, time.January, 1)},
	}
	// 36 - 12 = 24 months -> 2 years. Negative spans stand.
	if got := TotalYearsAt(intervals, testNow); got != 2 {
		t.Fatalf("expected 2 years, got %d", got)
	}
}

func TestTotalYearsAt_ZeroLengthAndEmpty(t *testing.T) {
	if got := TotalYearsAt(nil, testNow); got != 0 {
		t.Fatalf("expected 0 years for no intervals, got %d", got)
	}
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	intervals := []profile.ExperienceInterval{{StartDate: start, EndDate: &start}}
	if got := TotalYearsAt(intervals, testNow); got != 0 {
		t.Fatalf("expected 0 years for zero-length interval, got %d", got)
	}
}

func TestTotalYearsAt_RoundsHalfUp(t *testing.T) {
	intervals := []profile.ExperienceInterval{
		{StartDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2021, time.July, 1)},
	}
	// 18 months -> 1.5 -> 2.
	if got := TotalYearsAt(intervals, testNow); got != 2 {
		t.Fatalf("expected 2 years, got %d", got)
	}
}
