package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"planner/internal/engine"
	"planner/internal/kv"
	"planner/internal/seed"
	"planner/internal/storage"
	"planner/internal/ui"
)

var errLocked = errors.New("planner is locked; run 'planner settings --unlock' first")

func (a *app) openStore(ctx context.Context) (kv.Store, error) {
	return kv.Open(ctx, kv.Options{
		Backend:  a.cfg.Store.Backend,
		Path:     a.cfg.Store.Path,
		Capacity: a.cfg.Store.CapacityBytes,
		Logger:   a.log,
	})
}

func (a *app) seedPlan() (storage.MasterPlan, error) {
	return seed.Load(a.cfg.Seed.Path)
}

// openService opens the configured store and makes sure every entity exists.
func (a *app) openService(ctx context.Context) (*engine.Service, func(), error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	svc := newServiceOn(a, store)
	plan, err := a.seedPlan()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := svc.InitializeStorage(ctx, plan); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func newServiceOn(a *app, store kv.Store) *engine.Service {
	return engine.NewService(store,
		engine.WithLogger(a.log),
		engine.WithRetention(a.cfg.Backup.Retain),
	)
}

func requireUnlocked(ctx context.Context, svc *engine.Service) error {
	s, err := svc.SettingsRepo().Get(ctx)
	if err != nil {
		return err
	}
	if s.LockMode {
		return errLocked
	}
	return nil
}

// afterEdit makes the auto-backup a long-running session would have made.
func afterEdit(ctx context.Context, svc *engine.Service) {
	s, err := svc.SettingsRepo().Get(ctx)
	if err != nil || !s.AutoSave {
		return
	}
	svc.CreateAutoBackup(ctx)
}

func styles(ctx context.Context, svc *engine.Service) ui.Styles {
	t, err := svc.ThemeRepo().Get(ctx)
	if err != nil {
		return ui.For(storage.ThemeLight)
	}
	return ui.For(t)
}

func parseMonthArg(s string) (string, error) {
	if _, err := storage.ParseMonthKey(s); err != nil {
		return "", err
	}
	return s, nil
}

// parseDayArg accepts 1-31 for any month.
func parseDayArg(s string) (int, error) {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0, fmt.Errorf("day must be an integer between 1 and 31, got %q", s)
	}
	return d, nil
}
