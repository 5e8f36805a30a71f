package storage

import (
	"context"
	"fmt"
)

type SettingsRepo struct {
	a *Adapter
}

func NewSettingsRepo(a *Adapter) *SettingsRepo {
	return &SettingsRepo{a: a}
}

func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	return loadOr(ctx, r.a, KeySettings, DefaultSettings)
}

// Update shallow-merges patch onto the current settings.
func (r *SettingsRepo) Update(ctx context.Context, patch SettingsPatch) (Settings, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return s, err
	}
	if patch.LockMode != nil {
		s.LockMode = *patch.LockMode
	}
	if patch.AutoSave != nil {
		s.AutoSave = *patch.AutoSave
	}
	if err := r.a.Save(ctx, KeySettings, s); err != nil {
		return s, fmt.Errorf("settings update: %w", err)
	}
	return s, nil
}

func (r *SettingsRepo) Replace(ctx context.Context, s Settings) error {
	if err := r.a.Save(ctx, KeySettings, s); err != nil {
		return fmt.Errorf("settings replace: %w", err)
	}
	return nil
}

// ThemeRepo stores the theme as raw text, not JSON.
type ThemeRepo struct {
	a *Adapter
}

func NewThemeRepo(a *Adapter) *ThemeRepo {
	return &ThemeRepo{a: a}
}

// Get returns the stored theme, or light when nothing is stored.
func (r *ThemeRepo) Get(ctx context.Context) (Theme, error) {
	v, ok, err := r.a.LoadRaw(ctx, KeyTheme)
	if err != nil {
		return ThemeLight, err
	}
	if !ok || v == "" {
		return ThemeLight, nil
	}
	return Theme(v), nil
}

func (r *ThemeRepo) Set(ctx context.Context, t Theme) (Theme, error) {
	if err := r.a.SaveRaw(ctx, KeyTheme, string(t)); err != nil {
		return t, fmt.Errorf("set theme: %w", err)
	}
	return t, nil
}
