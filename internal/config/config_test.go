package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadPartialConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"default_unit": "meters", "snap_tolerance": 0.25}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "meters", cfg.GetDefaultUnit())
	assert.Equal(t, 0.25, cfg.GetSnapTolerance())

	// Everything omitted keeps its default.
	assert.Equal(t, "measurekit.db", cfg.GetDatabasePath())
	assert.Equal(t, ":8080", cfg.GetListen())
	assert.Equal(t, 2, cfg.GetDefaultPrecision())
	assert.Equal(t, 50, cfg.GetMaxHistory())
	assert.Equal(t, 1.0, cfg.GetGridSpacing())
	assert.Equal(t, 100.0, cfg.GetGridExtent())
}

func TestEmptyConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "feet", cfg.GetDefaultUnit())
	assert.Equal(t, 0.5, cfg.GetSnapTolerance())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"negative precision", `{"default_precision": -1}`},
		{"zero history", `{"max_history": 0}`},
		{"zero tolerance", `{"snap_tolerance": 0}`},
		{"negative grid spacing", `{"grid_spacing": -1}`},
		{"malformed json", `{`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
