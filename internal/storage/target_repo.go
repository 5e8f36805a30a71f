package storage

import (
	"context"
	"fmt"
	"strconv"
)

// TargetRepo stores per-target completion flags. Nothing in the displayed
// progress reads it; see engine.TargetProgress.
type TargetRepo struct {
	a *Adapter
}

func NewTargetRepo(a *Adapter) *TargetRepo {
	return &TargetRepo{a: a}
}

func (r *TargetRepo) Get(ctx context.Context) (TargetCompletion, error) {
	return loadOr(ctx, r.a, KeyTargetCompletion, func() TargetCompletion { return TargetCompletion{} })
}

func (r *TargetRepo) Update(ctx context.Context, monthKey string, targetIndex int, completed bool) (TargetCompletion, error) {
	tc, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if tc[monthKey] == nil {
		tc[monthKey] = map[string]bool{}
	}
	tc[monthKey][strconv.Itoa(targetIndex)] = completed
	if err := r.a.Save(ctx, KeyTargetCompletion, tc); err != nil {
		return nil, fmt.Errorf("target completion update: %w", err)
	}
	return tc, nil
}

func (r *TargetRepo) Replace(ctx context.Context, tc TargetCompletion) error {
	if err := r.a.Save(ctx, KeyTargetCompletion, tc); err != nil {
		return fmt.Errorf("target completion replace: %w", err)
	}
	return nil
}
