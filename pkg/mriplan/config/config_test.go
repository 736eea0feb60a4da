package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSafeMemFraction, cfg.SafeMem)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.LogicalCores)
	assert.Equal(t, 0, cfg.ReserveCores)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Empty(t, cfg.Curves)
}

func TestLoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())

	dir := filepath.Join(configHome, "mriplan")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	content := `safe_mem: 0.8
output: json
reserve_cores: 2
curves:
  fmriprep:
    "1": 240.0
    "4": 95.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.SafeMem)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 2, cfg.ReserveCores)

	tables, err := cfg.ParseCurves()
	require.NoError(t, err)
	require.Contains(t, tables, "fmriprep")
	assert.Equal(t, 240.0, tables["fmriprep"][1])
	assert.Equal(t, 95.0, tables["fmriprep"][4])
}

func TestParseCurves(t *testing.T) {
	tests := []struct {
		name    string
		curves  map[string]map[string]float64
		wantErr bool
	}{
		{
			name:   "nil curves",
			curves: nil,
		},
		{
			name: "valid keys",
			curves: map[string]map[string]float64{
				"wf": {"1": 100, "8": 35},
			},
		},
		{
			name: "non-numeric key",
			curves: map[string]map[string]float64{
				"wf": {"eight": 35},
			},
			wantErr: true,
		},
		{
			name: "zero key",
			curves: map[string]map[string]float64{
				"wf": {"0": 35},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Curves: tt.curves}
			tables, err := cfg.ParseCurves()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCurveKey)
				return
			}
			require.NoError(t, err)
			if tt.curves == nil {
				assert.Nil(t, tables)
			} else {
				assert.Len(t, tables, len(tt.curves))
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	require.NoError(t, WriteDefault())

	path := filepath.Join(configHome, "mriplan", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "safe_mem")

	// Second call is a no-op on an existing file.
	require.NoError(t, os.WriteFile(path, []byte("safe_mem: 0.5\n"), 0o644))
	require.NoError(t, WriteDefault())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "safe_mem: 0.5\n", string(data))
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/mriplan", dir)
}

func TestStateDir(t *testing.T) {
	assert.Contains(t, StateDir(), "mriplan")
}
