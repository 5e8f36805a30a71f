package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestLoad_AllFields verifies that all config fields are parsed correctly from TOML.
func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[store]
backend = "badger"
path = "/data/planner"
capacity_bytes = 1024

[backup]
interval = "10m"
debounce = "250ms"
retain = 3

[seed]
path = "/data/seed.yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreConfig{Backend: "badger", Path: "/data/planner", CapacityBytes: 1024}, cfg.Store)
	assert.Equal(t, 3, cfg.Backup.Retain)
	assert.Equal(t, "/data/seed.yaml", cfg.Seed.Path)

	interval, err := cfg.BackupInterval()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, interval)
	debounce, err := cfg.BackupDebounce()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, debounce)
}

// TestLoad_PartialKeepsDefaults verifies unset keys keep their defaults.
func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "memory"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, DefaultCapacityBytes, cfg.Store.CapacityBytes)
	assert.Equal(t, DefaultBackupRetain, cfg.Backup.Retain)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_DefaultPathMissingIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"syntax":   `log_level = `,
		"backend":  "[store]\nbackend = \"postgres\"\n",
		"level":    `log_level = "loud"`,
		"capacity": "[store]\ncapacity_bytes = -1\n",
		"interval": "[backup]\ninterval = \"soon\"\n",
		"negative": "[backup]\ndebounce = \"-1s\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Load(writeConfig(t, "[store]\npath = \"~/db/planner.db\"\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "db", "planner.db"), cfg.Store.Path)
}

func TestWriteDefault_RoundTripsAndNeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	created, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(path, []byte(`log_level = "error"`), 0600))
	created, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, created)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}
