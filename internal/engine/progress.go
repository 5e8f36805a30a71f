package engine

import (
	"math"
	"strings"

	"planner/internal/storage"
)

const (
	weightDaily   = 0.6
	weightTargets = 0.4
)

// Snapshot is one read of every repository. The progress functions below are
// pure over it.
type Snapshot struct {
	Plan      storage.MasterPlan
	Notes     storage.UserNotes
	Daily     storage.DailyProgress
	Summaries storage.UserSummaries
	Targets   storage.TargetCompletion
	Settings  storage.Settings
	Theme     storage.Theme
}

type NotesProgressResult struct {
	Overall    int `json:"overall"`
	NotesCount int `json:"notesCount"`
	TotalDays  int `json:"totalDays"`
	// Percentage mirrors Overall.
	Percentage int `json:"percentage"`
}

type EnhancedProgressResult struct {
	Overall int `json:"overall"`
	Daily   int `json:"daily"`
	Targets int `json:"targets"`
}

// MonthProgress is the share of the month's days marked completed.
func MonthProgress(s Snapshot, monthKey string) int {
	if _, ok := s.Plan[monthKey]; !ok {
		return 0
	}
	total, err := DaysInMonth(monthKey)
	if err != nil {
		return 0
	}
	completed := 0
	for _, done := range s.Daily[monthKey] {
		if done {
			completed++
		}
	}
	if completed == 0 {
		return 0
	}
	return percent(completed, total)
}

// NotesProgress is the share of the month's days that carry a note.
func NotesProgress(s Snapshot, monthKey string) NotesProgressResult {
	if _, ok := s.Plan[monthKey]; !ok {
		return NotesProgressResult{}
	}
	total, err := DaysInMonth(monthKey)
	if err != nil {
		return NotesProgressResult{}
	}
	count := len(s.Notes[monthKey])
	p := percent(count, total)
	return NotesProgressResult{Overall: p, NotesCount: count, TotalDays: total, Percentage: p}
}

// EnhancedProgress blends day completion (60%) with a keyword heuristic (40%):
// notes mentioning "target" or "complete", per planned target, capped at 100.
// The heuristic stands in for TargetCompletion, which it does not read.
func EnhancedProgress(s Snapshot, monthKey string) EnhancedProgressResult {
	mp, ok := s.Plan[monthKey]
	if !ok {
		return EnhancedProgressResult{}
	}
	daily := MonthProgress(s, monthKey)

	mentions := 0
	for _, note := range s.Notes[monthKey] {
		lower := strings.ToLower(note)
		if note != "" && (strings.Contains(lower, "target") || strings.Contains(lower, "complete")) {
			mentions++
		}
	}
	targets := 0
	switch {
	case len(mp.Targets) > 0:
		targets = min(roundHalfUp(100*float64(mentions)/float64(len(mp.Targets))), 100)
	case mentions > 0:
		// n/0 is unbounded; the cap applies.
		targets = 100
	}

	overall := roundHalfUp(float64(daily)*weightDaily + float64(targets)*weightTargets)
	return EnhancedProgressResult{Overall: clampPercent(overall), Daily: daily, Targets: targets}
}

// TargetProgress is the share of planned targets flagged in TargetCompletion.
// No displayed aggregate uses it.
func TargetProgress(s Snapshot, monthKey string) int {
	mp, ok := s.Plan[monthKey]
	if !ok || len(mp.Targets) == 0 {
		return 0
	}
	completed := 0
	for _, done := range s.Targets[monthKey] {
		if done {
			completed++
		}
	}
	return percent(completed, len(mp.Targets))
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return clampPercent(roundHalfUp(100 * float64(n) / float64(total)))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// clampPercent bounds p to [0, 100]. Out-of-range days (day 31 of a 30-day
// month) can otherwise push a share above 100.
func clampPercent(p int) int {
	return max(0, min(p, 100))
}
