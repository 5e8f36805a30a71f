package storage

import (
	"context"
	"fmt"
	"strconv"
)

// ProgressRepo stores the per-day completion flags.
type ProgressRepo struct {
	a *Adapter
}

func NewProgressRepo(a *Adapter) *ProgressRepo {
	return &ProgressRepo{a: a}
}

func (r *ProgressRepo) Get(ctx context.Context) (DailyProgress, error) {
	return loadOr(ctx, r.a, KeyDailyProgress, func() DailyProgress { return DailyProgress{} })
}

// Toggle flips the day's flag; an absent day counts as false.
func (r *ProgressRepo) Toggle(ctx context.Context, monthKey string, day int) (DailyProgress, error) {
	progress, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if progress[monthKey] == nil {
		progress[monthKey] = map[string]bool{}
	}
	d := strconv.Itoa(day)
	progress[monthKey][d] = !progress[monthKey][d]
	if err := r.a.Save(ctx, KeyDailyProgress, progress); err != nil {
		return nil, fmt.Errorf("toggle day: %w", err)
	}
	return progress, nil
}

func (r *ProgressRepo) Replace(ctx context.Context, progress DailyProgress) error {
	if err := r.a.Save(ctx, KeyDailyProgress, progress); err != nil {
		return fmt.Errorf("progress replace: %w", err)
	}
	return nil
}
