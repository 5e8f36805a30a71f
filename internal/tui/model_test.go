package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/engine"
	"planner/internal/kv"
	"planner/internal/seed"
	"planner/internal/storage"
)

func newTestBoard(t *testing.T, now time.Time) (boardModel, *engine.Service, *int) {
	t.Helper()
	store := kv.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	svc := engine.NewService(store)
	plan, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, svc.InitializeStorage(context.Background(), plan))

	touches := 0
	m := newBoardModel(context.Background(), svc, func() { touches++ }, now)
	m = step(t, m, m.Init())
	return m, svc, &touches
}

// step runs cmd and feeds its message back, following reloads.
func step(t *testing.T, m boardModel, cmd tea.Cmd) boardModel {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		next, c := m.Update(msg)
		m = next.(boardModel)
		cmd = c
		if _, ok := msg.(loadedMsg); ok {
			break
		}
	}
	return m
}

func press(t *testing.T, m boardModel, k tea.KeyMsg) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(boardModel), cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestBoardOpensOnCurrentMonth(t *testing.T) {
	m, _, _ := newTestBoard(t, time.Date(2026, 2, 30, 0, 0, 0, 0, time.UTC))

	// 2026-02-30 normalises to March 2.
	assert.Equal(t, "2026-03", m.monthKey())
	assert.Equal(t, 2, m.day)
	assert.Len(t, m.months, 22)
	assert.Contains(t, m.View(), "March 2026")
}

func TestBoardToggleDayTouchesScheduler(t *testing.T) {
	m, svc, touches := newTestBoard(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)
	m = step(t, m, cmd)

	progress, err := svc.ProgressRepo().Get(context.Background())
	require.NoError(t, err)
	assert.True(t, progress["2026-01"]["10"])
	assert.Equal(t, 1, *touches)
	assert.True(t, m.snap.Daily["2026-01"]["10"])
	assert.Contains(t, m.lastLog, "marked done")
}

func TestBoardRefusesEditsWhenLocked(t *testing.T) {
	m, svc, touches := newTestBoard(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	lock := true
	_, err := svc.SettingsRepo().Update(context.Background(), storage.SettingsPatch{LockMode: &lock})
	require.NoError(t, err)
	m = step(t, m, m.loadCmd())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, cmd)
	assert.Contains(t, m.lastLog, "Locked")

	m, cmd = press(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.editing)
	assert.Equal(t, 0, *touches)
}

func TestBoardNoAutoSaveSkipsTouch(t *testing.T) {
	m, svc, touches := newTestBoard(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	off := false
	_, err := svc.SettingsRepo().Update(context.Background(), storage.SettingsPatch{AutoSave: &off})
	require.NoError(t, err)
	m = step(t, m, m.loadCmd())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	_ = step(t, m, cmd)
	assert.Equal(t, 0, *touches)
}

func TestBoardEditNote(t *testing.T) {
	m, svc, _ := newTestBoard(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	m, _ = press(t, m, runes("n"))
	require.True(t, m.editing)
	m, _ = press(t, m, runes("target hit"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	m = step(t, m, cmd)

	notes, err := svc.NotesRepo().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "target hit", notes["2026-01"]["10"])
	assert.Equal(t, "target hit", m.snap.Notes["2026-01"]["10"])

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, "target hit", m.input.Value())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, "Cancelled.", m.lastLog)
}

func TestBoardNavigationClampsDay(t *testing.T) {
	m, _, _ := newTestBoard(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "2026-02", m.monthKey())
	assert.Equal(t, 28, m.day)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 28, m.day)
	m, _ = press(t, m, runes("h"))
	assert.Equal(t, 27, m.day)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "2025-12", m.monthKey())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "2025-12", m.monthKey())
}

func TestBoardThemeToggle(t *testing.T) {
	m, svc, _ := newTestBoard(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	m, cmd := press(t, m, runes("t"))
	m = step(t, m, cmd)
	theme, err := svc.ThemeRepo().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.ThemeDark, theme)
	assert.Equal(t, storage.ThemeDark, m.snap.Theme)
}
