package engine

import (
	"context"
	"fmt"

	"planner/internal/storage"
)

// Validate checks the stored entities against their schemas and returns one
// human-readable issue per problem. An empty result means healthy.
func (s *Service) Validate(ctx context.Context) []string {
	var issues []string

	text, ok, err := s.adapter.LoadRaw(ctx, storage.KeyMasterPlan)
	if err != nil {
		return append(issues, fmt.Sprintf("Data validation error: %v", err))
	}
	var plan storage.MasterPlan
	switch {
	case !ok:
		issues = append(issues, "Master plan data is missing or empty")
	default:
		if err := storage.DecodeObject(storage.KeyMasterPlan, text, &plan); err != nil {
			issues = append(issues, fmt.Sprintf("Data validation error: %v", err))
			break
		}
		if len(plan) == 0 {
			issues = append(issues, "Master plan data is missing or empty")
		}
		for _, err := range plan.Validate() {
			issues = append(issues, "Master plan "+err.Error())
		}
	}

	objects := []struct {
		key   string
		label string
		v     any
	}{
		{storage.KeyUserNotes, "User notes", &storage.UserNotes{}},
		{storage.KeyDailyProgress, "Daily progress", &storage.DailyProgress{}},
		{storage.KeyUserSummaries, "User summaries", &storage.UserSummaries{}},
		{storage.KeySettings, "Settings", &storage.Settings{}},
	}
	for _, o := range objects {
		text, ok, err := s.adapter.LoadRaw(ctx, o.key)
		if err != nil {
			issues = append(issues, fmt.Sprintf("Data validation error: %v", err))
			continue
		}
		if !ok {
			continue
		}
		if err := storage.DecodeObject(o.key, text, o.v); err != nil {
			issues = append(issues, o.label+" data is corrupted")
		}
	}

	theme, err := s.theme.Get(ctx)
	if err != nil {
		issues = append(issues, fmt.Sprintf("Data validation error: %v", err))
	} else if !theme.IsValid() {
		issues = append(issues, fmt.Sprintf("Theme %q is not light or dark", theme))
	}
	return issues
}
