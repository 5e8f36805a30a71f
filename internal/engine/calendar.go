package engine

import (
	"time"

	"planner/internal/storage"
)

// DaysInMonth returns 28-31 for a YYYY-MM month-key, leap-year aware.
func DaysInMonth(monthKey string) (int, error) {
	first, err := storage.ParseMonthKey(monthKey)
	if err != nil {
		return 0, err
	}
	// Day 0 of the next month is the last day of this one.
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Day(), nil
}

// CurrentMonthKey formats t as a month-key.
func CurrentMonthKey(t time.Time) string {
	return t.Format("2006-01")
}
