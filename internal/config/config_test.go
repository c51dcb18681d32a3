package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		check func(t *testing.T, dir string, c *Config, err error)
	}{
		{
			name: "first run writes defaults",
			check: func(t *testing.T, dir string, c *Config, err error) {
				require.NoError(t, err)
				assert.FileExists(t, filepath.Join(dir, "config.yaml"))
				assert.Equal(t, 300*time.Millisecond, c.TurnDuration)
				assert.Equal(t, 280*time.Millisecond, c.SwapDuration)
				assert.Equal(t, 100*time.Millisecond, c.StepPause)
				assert.Equal(t, 300*time.Millisecond, c.SettlePause)
				assert.Equal(t, 16*time.Millisecond, c.FrameInterval)
				assert.Equal(t, []string{"top", "mid"}, c.ActiveLayers)
				assert.Equal(t, filepath.Join(dir, "journal.db"), c.Journal)
				assert.Equal(t, "warn", c.LogLevel)
				assert.Empty(t, c.LogFile)
			},
		},
		{
			name: "file values win over defaults",
			setup: func(t *testing.T, dir string) {
				yaml := "turn_duration: 50ms\nactive_layers: [mid, bot]\njournal: \"\"\nlog_level: debug\n"
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
			},
			check: func(t *testing.T, dir string, c *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, 50*time.Millisecond, c.TurnDuration)
				assert.Equal(t, []string{"mid", "bot"}, c.ActiveLayers)
				assert.Empty(t, c.Journal)
				assert.Equal(t, "debug", c.LogLevel)
			},
		},
		{
			name: "relative journal path resolves against dir",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("journal: sub/j.db\n"), 0o644))
			},
			check: func(t *testing.T, dir string, c *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(dir, "sub", "j.db"), c.Journal)
			},
		},
		{
			name: "environment overrides file",
			setup: func(t *testing.T, dir string) {
				t.Setenv("CUBELAYERS_SWAP_DURATION", "1s")
			},
			check: func(t *testing.T, dir string, c *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, time.Second, c.SwapDuration)
			},
		},
		{
			name: "bad frame interval",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("frame_interval: 0s\n"), 0o644))
			},
			check: func(t *testing.T, dir string, c *Config, err error) {
				assert.ErrorIs(t, err, ErrInvalid)
				assert.Nil(t, c)
			},
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("turn_duration: [\n"), 0o644))
			},
			check: func(t *testing.T, dir string, c *Config, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "cfg")
			if tt.setup != nil {
				require.NoError(t, os.MkdirAll(dir, 0o755))
				tt.setup(t, dir)
			}
			c, err := Load(dir)
			tt.check(t, dir, c, err)
		})
	}
}

func TestDefaultFileIsKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))
	_, err := Load(dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log_level: info\n", string(data))
}
