package engine

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"planner/internal/kv"
	"planner/internal/storage"
)

// DefaultRetention is how many auto-backups are kept.
const DefaultRetention = 5

type Service struct {
	adapter   *storage.Adapter
	plans     *storage.MasterPlanRepo
	notes     *storage.NotesRepo
	progress  *storage.ProgressRepo
	summaries *storage.SummaryRepo
	settings  *storage.SettingsRepo
	theme     *storage.ThemeRepo
	targets   *storage.TargetRepo

	log       *zap.Logger
	now       func() time.Time
	retention int
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now (backup keys, export dates).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRetention sets how many auto-backups survive rotation.
func WithRetention(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retention = n
		}
	}
}

func NewService(store kv.Store, opts ...Option) *Service {
	s := &Service{log: zap.NewNop(), now: time.Now, retention: DefaultRetention}
	for _, opt := range opts {
		opt(s)
	}
	a := storage.NewAdapter(store, s.log)
	s.adapter = a
	s.plans = storage.NewMasterPlanRepo(a)
	s.notes = storage.NewNotesRepo(a)
	s.progress = storage.NewProgressRepo(a)
	s.summaries = storage.NewSummaryRepo(a)
	s.settings = storage.NewSettingsRepo(a)
	s.theme = storage.NewThemeRepo(a)
	s.targets = storage.NewTargetRepo(a)
	return s
}

func (s *Service) MasterPlanRepo() *storage.MasterPlanRepo { return s.plans }
func (s *Service) NotesRepo() *storage.NotesRepo           { return s.notes }
func (s *Service) ProgressRepo() *storage.ProgressRepo     { return s.progress }
func (s *Service) SummaryRepo() *storage.SummaryRepo       { return s.summaries }
func (s *Service) SettingsRepo() *storage.SettingsRepo     { return s.settings }
func (s *Service) ThemeRepo() *storage.ThemeRepo           { return s.theme }
func (s *Service) TargetRepo() *storage.TargetRepo         { return s.targets }

// InitializeStorage seeds the master plan when none exists and creates the
// other entities with their defaults when absent.
func (s *Service) InitializeStorage(ctx context.Context, seed storage.MasterPlan) error {
	seeded, err := s.plans.SeedIfAbsent(ctx, seed)
	if err != nil {
		return err
	}
	if seeded {
		s.log.Info("seeded master plan", zap.Int("months", len(seed)))
	}

	defaults := []struct {
		key string
		v   any
	}{
		{storage.KeyUserNotes, storage.UserNotes{}},
		{storage.KeyDailyProgress, storage.DailyProgress{}},
		{storage.KeyUserSummaries, storage.UserSummaries{}},
		{storage.KeySettings, storage.DefaultSettings()},
	}
	for _, d := range defaults {
		_, ok, err := s.adapter.LoadRaw(ctx, d.key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := s.adapter.Save(ctx, d.key, d.v); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears every planner key and re-seeds the master plan. It cannot be undone.
func (s *Service) Reset(ctx context.Context, seed storage.MasterPlan) error {
	if err := s.adapter.ClearNamespace(ctx); err != nil {
		return err
	}
	return s.InitializeStorage(ctx, seed)
}

// Snapshot reads every repository once.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Plan, err = s.plans.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Notes, err = s.notes.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Daily, err = s.progress.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Summaries, err = s.summaries.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Targets, err = s.targets.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Settings, err = s.settings.Get(ctx); err != nil {
		return snap, err
	}
	if snap.Theme, err = s.theme.Get(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

// MonthKeys returns the plan's month-keys in ascending order.
func (s *Service) MonthKeys(ctx context.Context) ([]string, error) {
	plan, err := s.plans.Get(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Keys(), nil
}

// SaveNote trims text and stores it; blank text deletes the day's note.
func (s *Service) SaveNote(ctx context.Context, monthKey string, day int, text string) (storage.UserNotes, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.notes.Delete(ctx, monthKey, day)
	}
	return s.notes.Update(ctx, monthKey, day, text)
}

func (s *Service) MonthProgress(ctx context.Context, monthKey string) (int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return MonthProgress(snap, monthKey), nil
}

func (s *Service) NotesProgress(ctx context.Context, monthKey string) (NotesProgressResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return NotesProgressResult{}, err
	}
	return NotesProgress(snap, monthKey), nil
}

func (s *Service) EnhancedProgress(ctx context.Context, monthKey string) (EnhancedProgressResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return EnhancedProgressResult{}, err
	}
	return EnhancedProgress(snap, monthKey), nil
}

func (s *Service) TargetProgress(ctx context.Context, monthKey string) (int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return TargetProgress(snap, monthKey), nil
}
