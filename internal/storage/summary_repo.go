package storage

import (
	"context"
	"fmt"
)

type SummaryRepo struct {
	a *Adapter
}

func NewSummaryRepo(a *Adapter) *SummaryRepo {
	return &SummaryRepo{a: a}
}

func (r *SummaryRepo) Get(ctx context.Context) (UserSummaries, error) {
	return loadOr(ctx, r.a, KeyUserSummaries, func() UserSummaries { return UserSummaries{} })
}

func (r *SummaryRepo) Update(ctx context.Context, monthKey, text string) (UserSummaries, error) {
	summaries, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	summaries[monthKey] = text
	if err := r.a.Save(ctx, KeyUserSummaries, summaries); err != nil {
		return nil, fmt.Errorf("summary update: %w", err)
	}
	return summaries, nil
}

func (r *SummaryRepo) Replace(ctx context.Context, summaries UserSummaries) error {
	if err := r.a.Save(ctx, KeyUserSummaries, summaries); err != nil {
		return fmt.Errorf("summaries replace: %w", err)
	}
	return nil
}
