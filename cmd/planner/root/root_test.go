package root

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	dir    string
	config string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`log_level = "error"

[store]
backend = "sqlite"
path = %q

[backup]
retain = 3
`, filepath.Join(dir, "planner.db"))
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0600))
	return env{dir: dir, config: cfg}
}

func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", e.config))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err, out)
	return out
}

func TestInitThenValidateIsClean(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "init")
	assert.Contains(t, out, "22 (2025-12 to 2027-09)")

	out = e.mustRun(t, "validate")
	assert.Contains(t, out, "No issues")
}

func TestValidateBeforeInitReportsMissingPlan(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "Master plan data is missing or empty")
}

func TestToggleNoteAndMonth(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "toggle", "2026-01", "3")
	assert.Contains(t, out, "2026-01 day 3 done")
	e.mustRun(t, "note", "set", "2026-01", "3", "hit", "the", "target")
	e.mustRun(t, "summary", "2026-01", "solid", "start")
	e.mustRun(t, "target", "2026-01", "1")

	out = e.mustRun(t, "month", "2026-01")
	assert.Contains(t, out, "hit the target")
	assert.Contains(t, out, "solid start")
	assert.Contains(t, out, "[x]")

	out = e.mustRun(t, "toggle", "2026-01", "3")
	assert.Contains(t, out, "reopened")
	e.mustRun(t, "note", "rm", "2026-01", "3")
	out = e.mustRun(t, "month", "2026-01")
	assert.NotContains(t, out, "hit the target")
}

func TestEditsMakeAutoBackupsWithRetention(t *testing.T) {
	e := newEnv(t)
	for d := 1; d <= 5; d++ {
		e.mustRun(t, "toggle", "2026-01", fmt.Sprint(d))
	}
	out := e.mustRun(t, "backup", "list")
	assert.Equal(t, 3, strings.Count(out, "planner_auto_backup_"))

	e.mustRun(t, "settings", "--autosave=false")
	e.mustRun(t, "backup", "create")
	out = e.mustRun(t, "backup", "list")
	assert.Equal(t, 3, strings.Count(out, "planner_auto_backup_"))
}

func TestLockRefusesEdits(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "settings", "--lock")

	_, err := e.run(t, "", "toggle", "2026-01", "1")
	require.ErrorIs(t, err, errLocked)
	_, err = e.run(t, "", "note", "set", "2026-01", "1", "x")
	require.ErrorIs(t, err, errLocked)

	e.mustRun(t, "settings", "--unlock")
	e.mustRun(t, "toggle", "2026-01", "1")
}

func TestExportImportRoundTrip(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "note", "set", "2026-02", "14", "halfway")
	e.mustRun(t, "theme", "dark")

	file := filepath.Join(e.dir, "export.json")
	e.mustRun(t, "export", "-o", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"halfway"`)

	e.mustRun(t, "reset", "--yes")
	out := e.mustRun(t, "month", "2026-02")
	assert.NotContains(t, out, "halfway")

	e.mustRun(t, "import", file)
	out = e.mustRun(t, "month", "2026-02")
	assert.Contains(t, out, "halfway")
	assert.Contains(t, e.mustRun(t, "theme"), "dark")
}

func TestImportRejectsMalformedFile(t *testing.T) {
	e := newEnv(t)
	file := filepath.Join(e.dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"userNotes":`), 0600))

	_, err := e.run(t, "", "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backup file")
}

func TestResetNeedsConfirmation(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "note", "set", "2026-01", "1", "keep me")

	_, err := e.run(t, "no\n", "reset")
	require.Error(t, err)
	assert.Contains(t, e.mustRun(t, "month", "2026-01"), "keep me")

	_, err = e.run(t, "yes\n", "reset")
	require.NoError(t, err)
	assert.NotContains(t, e.mustRun(t, "month", "2026-01"), "keep me")
}

func TestPlanSetPatchesOnlyGivenFields(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "plan", "set", "2030-01", "--target", "one", "--target", "two")
	assert.Contains(t, out, "2 targets, 0 steps")
	assert.Contains(t, out, "January 2030")

	out = e.mustRun(t, "plan", "set", "2030-01", "--label", "Launch")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "2 targets")

	_, err := e.run(t, "", "plan", "set", "2030-01")
	require.Error(t, err)
}

func TestArgumentErrors(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "", "toggle", "January", "1")
	require.Error(t, err)
	_, err = e.run(t, "", "toggle", "2026-01", "32")
	require.Error(t, err)
	_, err = e.run(t, "", "target", "2026-01", "9")
	require.Error(t, err)
	_, err = e.run(t, "", "theme", "sepia")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Wrote")
}
