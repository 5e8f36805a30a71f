package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/engine"
)

// RunBoard opens the interactive board. touch, when set, is called after
// each successful edit while autoSave is on.
func RunBoard(ctx context.Context, svc *engine.Service, touch func(), out io.Writer) error {
	m := newBoardModel(ctx, svc, touch, time.Now())
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
