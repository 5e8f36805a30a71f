package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/kv"
)

func newTestAdapter(t *testing.T, capacity int64) (*Adapter, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore(capacity)
	t.Cleanup(func() { _ = store.Close() })
	return NewAdapter(store, nil), store
}

func strPtr(s string) *string { return &s }

func TestMasterPlanUpdateIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewMasterPlanRepo(a)

	seed := MasterPlan{"2025-12": {
		Month:          "December 2025",
		Targets:        []string{"t1", "t2"},
		HowToAchieve:   []string{"s1"},
		MonthlySummary: "old",
	}}
	seeded, err := repo.SeedIfAbsent(ctx, seed)
	require.NoError(t, err)
	require.True(t, seeded)

	plan, err := repo.Update(ctx, "2025-12", MonthPlanPatch{MonthlySummary: strPtr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", plan["2025-12"].MonthlySummary)
	assert.Equal(t, []string{"t1", "t2"}, plan["2025-12"].Targets)
	assert.Equal(t, []string{"s1"}, plan["2025-12"].HowToAchieve)
	assert.Equal(t, "December 2025", plan["2025-12"].Month)

	targets := []string{"only"}
	plan, err = repo.Update(ctx, "2025-12", MonthPlanPatch{Targets: &targets})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, plan["2025-12"].Targets)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, plan, stored)
}

func TestMasterPlanUpdateCreatesMissingMonth(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewMasterPlanRepo(a)

	plan, err := repo.Update(ctx, "2030-02", MonthPlanPatch{MonthlySummary: strPtr("later")})
	require.NoError(t, err)
	mp := plan["2030-02"]
	assert.Equal(t, "February 2030", mp.Month)
	assert.NotNil(t, mp.Targets)
	assert.NotNil(t, mp.HowToAchieve)
	assert.NoError(t, mp.Validate())
}

func TestSeedIfAbsentNeverReseeds(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewMasterPlanRepo(a)

	_, err := repo.SeedIfAbsent(ctx, MasterPlan{"2026-01": {Month: "a", Targets: []string{}, HowToAchieve: []string{}}})
	require.NoError(t, err)
	seeded, err := repo.SeedIfAbsent(ctx, MasterPlan{"2027-01": {Month: "b", Targets: []string{}, HowToAchieve: []string{}}})
	require.NoError(t, err)
	assert.False(t, seeded)

	plan, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01"}, plan.Keys())
}

func TestDeleteNoteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewNotesRepo(a)

	_, err := repo.Update(ctx, "2026-01", 3, "hello")
	require.NoError(t, err)
	_, err = repo.Update(ctx, "2026-01", 4, "keep")
	require.NoError(t, err)

	once, err := repo.Delete(ctx, "2026-01", 3)
	require.NoError(t, err)
	twice, err := repo.Delete(ctx, "2026-01", 3)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.Equal(t, UserNotes{"2026-01": {"4": "keep"}}, twice)

	_, err = repo.Delete(ctx, "1999-01", 1)
	require.NoError(t, err)
}

func TestUpdateNoteWithEmptyTextRemovesEntry(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewNotesRepo(a)

	_, err := repo.Update(ctx, "2026-01", 9, "x")
	require.NoError(t, err)
	notes, err := repo.Update(ctx, "2026-01", 9, "")
	require.NoError(t, err)
	_, ok := notes["2026-01"]["9"]
	assert.False(t, ok)
}

func TestNotesAcceptDaysBeyondMonthLength(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)

	// April has 30 days; day 31 is stored anyway.
	notes, err := NewNotesRepo(a).Update(ctx, "2026-04", 31, "ghost day")
	require.NoError(t, err)
	assert.Equal(t, "ghost day", notes["2026-04"]["31"])

	progress, err := NewProgressRepo(a).Toggle(ctx, "2026-04", 31)
	require.NoError(t, err)
	assert.True(t, progress["2026-04"]["31"])
}

func TestToggleTwiceRestoresFalse(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewProgressRepo(a)

	p, err := repo.Toggle(ctx, "2026-01", 5)
	require.NoError(t, err)
	assert.True(t, p["2026-01"]["5"])

	p, err = repo.Toggle(ctx, "2026-01", 5)
	require.NoError(t, err)
	assert.False(t, p["2026-01"]["5"])
}

func TestReadsFallBackToDefaultsOnBadText(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAdapter(t, 0)

	require.NoError(t, store.Set(ctx, KeyUserNotes, "[1,2,3]"))
	require.NoError(t, store.Set(ctx, KeyDailyProgress, "null"))
	require.NoError(t, store.Set(ctx, KeyUserSummaries, "{not json"))
	require.NoError(t, store.Set(ctx, KeySettings, `"on"`))

	notes, err := NewNotesRepo(a).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, UserNotes{}, notes)

	progress, err := NewProgressRepo(a).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DailyProgress{}, progress)

	summaries, err := NewSummaryRepo(a).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, UserSummaries{}, summaries)

	settings, err := NewSettingsRepo(a).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	var notesOut UserNotes
	_, err = a.Load(ctx, KeyUserNotes, &notesOut)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KeyUserNotes, de.Key)
}

func TestSettingsAndThemeDefaults(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)

	settings := NewSettingsRepo(a)
	s, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Settings{LockMode: false, AutoSave: true}, s)

	lock := true
	s, err = settings.Update(ctx, SettingsPatch{LockMode: &lock})
	require.NoError(t, err)
	assert.Equal(t, Settings{LockMode: true, AutoSave: true}, s)

	theme := NewThemeRepo(a)
	got, err := theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)
	_, err = theme.Set(ctx, ThemeDark)
	require.NoError(t, err)
	got, err = theme.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)
}

func TestFailedWriteKeepsPreviousEntity(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 64)
	repo := NewSummaryRepo(a)

	_, err := repo.Update(ctx, "2026-01", "short")
	require.NoError(t, err)

	_, err = repo.Update(ctx, "2026-02", "this reflection is long enough to blow through the tiny quota")
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, UserSummaries{"2026-01": "short"}, got)
}

func TestTargetCompletionUpdate(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAdapter(t, 0)
	repo := NewTargetRepo(a)

	tc, err := repo.Update(ctx, "2026-01", 2, true)
	require.NoError(t, err)
	assert.Equal(t, TargetCompletion{"2026-01": {"2": true}}, tc)
}

func TestClearNamespaceLeavesForeignKeys(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAdapter(t, 0)

	require.NoError(t, store.Set(ctx, "other_app", "x"))
	_, err := NewSummaryRepo(a).Update(ctx, "2026-01", "s")
	require.NoError(t, err)
	require.NoError(t, a.ClearNamespace(ctx))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other_app"}, keys)
}

func TestMasterPlanValidate(t *testing.T) {
	plan := MasterPlan{
		"2026-01": {Month: "January 2026", Targets: []string{}, HowToAchieve: []string{}},
		"2026-13": {Month: "bad", Targets: []string{}, HowToAchieve: []string{}},
		"2026-02": {Month: "February 2026", HowToAchieve: []string{}},
	}
	errs := plan.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "2026-02")
	assert.Contains(t, errs[0].Error(), "Targets required")
	assert.Contains(t, errs[1].Error(), "2026-13")
}
