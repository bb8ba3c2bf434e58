//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/picker"
)

func TestConfig_DefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := New(path)
	require.NoError(t, err)
	require.Equal(t, picker.Default(), c.Data.Selection())

	// New never writes.
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestConfig_NewOrExistingCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c, err := NewOrExisting(path)
	require.NoError(t, err)
	require.Equal(t, picker.Default(), c.Data.Selection())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfig_SetDefaultPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	c, err := NewOrExisting(path)
	require.NoError(t, err)
	require.NoError(t, c.SetDefault(picker.Selection{Minutes: 5, Seconds: 15}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	require.Equal(t, 5, raw["default_minutes"])
	require.Equal(t, 15, raw["default_seconds"])

	c2, err := New(path)
	require.NoError(t, err)
	require.Equal(t, picker.Selection{Minutes: 5, Seconds: 15}, c2.Data.Selection())
}

func TestConfig_SetDefaultRejectsOutOfRange(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	err = c.SetDefault(picker.Selection{Minutes: 1, Seconds: 60})
	require.ErrorIs(t, err, picker.ErrInvalidSelection)
	require.Equal(t, picker.Default(), c.Data.Selection())
}

func TestConfig_LoadHealsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_minutes: 75\ndefault_seconds: 10\nlog_level: loud\n"), 0o600))

	c, err := New(path)
	require.NoError(t, err)
	require.Equal(t, picker.DefaultMinutes, c.Data.DefaultMinutes)
	require.Equal(t, 10, c.Data.DefaultSeconds)
	require.Empty(t, c.Data.LogLevel)

	// Healed values are written back.
	c2, err := New(path)
	require.NoError(t, err)
	require.Equal(t, c.Data, c2.Data)
}

func TestConfig_LoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_minutes: [\n"), 0o600))

	_, err := New(path)
	require.Error(t, err)
}

func TestConfig_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := NewOrExisting(path)
	require.NoError(t, err)
	require.NoError(t, c.SetDefault(picker.Selection{Minutes: 10}))
	c.Data.LogLevel = "debug"

	require.NoError(t, c.Reset())
	c2, err := New(path)
	require.NoError(t, err)
	require.Equal(t, defaultData(), c2.Data)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/.config/countdown/config.yaml")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config/countdown/config.yaml"), got)

	got, err = expandTilde("/tmp/x.yaml")
	require.NoError(t, err)
	require.Equal(t, "/tmp/x.yaml", got)
}

func TestConfig_NewDefaultIgnoresMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_minutes: [\n"), 0o600))

	c, err := NewDefault(path)
	require.NoError(t, err)
	require.Equal(t, defaultData(), c.Data)

	require.NoError(t, c.Reset())
	c2, err := New(path)
	require.NoError(t, err)
	require.Equal(t, defaultData(), c2.Data)
}
