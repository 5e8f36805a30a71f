package storage

import (
	"context"
	"fmt"
)

type MasterPlanRepo struct {
	a *Adapter
}

func NewMasterPlanRepo(a *Adapter) *MasterPlanRepo {
	return &MasterPlanRepo{a: a}
}

func (r *MasterPlanRepo) Get(ctx context.Context) (MasterPlan, error) {
	return loadOr(ctx, r.a, KeyMasterPlan, func() MasterPlan { return MasterPlan{} })
}

// Exists reports whether a master plan has been stored at all.
func (r *MasterPlanRepo) Exists(ctx context.Context) (bool, error) {
	_, ok, err := r.a.LoadRaw(ctx, KeyMasterPlan)
	return ok, err
}

// Update shallow-merges patch onto the month entry, creating it when absent.
func (r *MasterPlanRepo) Update(ctx context.Context, monthKey string, patch MonthPlanPatch) (MasterPlan, error) {
	plan, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	mp, ok := plan[monthKey]
	if !ok {
		mp = MonthPlan{Month: MonthLabel(monthKey), Targets: []string{}, HowToAchieve: []string{}}
	}
	if patch.Month != nil {
		mp.Month = *patch.Month
	}
	if patch.Targets != nil {
		mp.Targets = append([]string{}, (*patch.Targets)...)
	}
	if patch.HowToAchieve != nil {
		mp.HowToAchieve = append([]string{}, (*patch.HowToAchieve)...)
	}
	if patch.MonthlySummary != nil {
		mp.MonthlySummary = *patch.MonthlySummary
	}
	plan[monthKey] = mp
	if err := r.a.Save(ctx, KeyMasterPlan, plan); err != nil {
		return nil, fmt.Errorf("master plan update: %w", err)
	}
	return plan, nil
}

// Replace overwrites the whole plan.
func (r *MasterPlanRepo) Replace(ctx context.Context, plan MasterPlan) error {
	if err := r.a.Save(ctx, KeyMasterPlan, plan); err != nil {
		return fmt.Errorf("master plan replace: %w", err)
	}
	return nil
}

// SeedIfAbsent stores plan only when no master plan exists yet.
func (r *MasterPlanRepo) SeedIfAbsent(ctx context.Context, plan MasterPlan) (bool, error) {
	ok, err := r.Exists(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if plan == nil {
		plan = MasterPlan{}
	}
	if err := r.Replace(ctx, plan); err != nil {
		return false, err
	}
	return true, nil
}
