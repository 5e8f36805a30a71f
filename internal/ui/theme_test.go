package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planner/internal/storage"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[----------]", ProgressBar(0, 10))
	assert.Equal(t, "[#####-----]", ProgressBar(50, 10))
	assert.Equal(t, "[##########]", ProgressBar(100, 10))
	assert.Equal(t, "[##########]", ProgressBar(140, 10))
	assert.Equal(t, "[---]", ProgressBar(-5, 1))
}

func TestForPicksPalette(t *testing.T) {
	light := For(storage.ThemeLight)
	dark := For(storage.ThemeDark)
	assert.NotEqual(t, light.Title.GetForeground(), dark.Title.GetForeground())
	assert.Equal(t, light.Title.GetForeground(), For("sepia").Title.GetForeground())
}
