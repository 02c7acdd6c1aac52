package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, snake.DefaultRules(), cfg.Rules())
	assert.Equal(t, snake.SpeedMedium, cfg.StartSpeed())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
	assert.Equal(t, "sqlite", cfg.Leaderboard.Backend)
	assert.Equal(t, 10, cfg.Leaderboard.Size)
}

func TestLoadCustomPathOverlays(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "grid:\n  width: 30\nspeed:\n  default: fast\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Grid.Width)
	assert.Equal(t, 20, cfg.Grid.Height, "unset keys keep their defaults")
	assert.Equal(t, snake.SpeedFast, cfg.StartSpeed())
}

func TestLoadMissingCustomPath(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	// Given: both a local and a user config
	writeFile(t, filepath.Join("configs", "snake.yaml"), "scoring:\n  points_per_food: 5\n")
	writeFile(t, filepath.Join(home, ".snake", "config.yaml"), "scoring:\n  points_per_food: 7\n")

	// When
	cfg, err := Load("")
	require.NoError(t, err)

	// Then: the user config wins
	assert.Equal(t, 7, cfg.Scoring.PointsPerFood)

	// And the local config is used once the user config is gone
	require.NoError(t, os.Remove(filepath.Join(home, ".snake", "config.yaml")))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Scoring.PointsPerFood)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "grid:\n  width: 30\n")

	t.Setenv("SNAKE_GRID_WIDTH", "40")
	t.Setenv("SNAKE_LEADERBOARD_BACKEND", "redis")
	t.Setenv("SNAKE_SSH_IDLE_TIMEOUT", "5m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Grid.Width, "env beats the file")
	assert.Equal(t, "redis", cfg.Leaderboard.Backend)
	assert.Equal(t, 5*time.Minute, cfg.SSH.IdleTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"tiny grid", "grid:\n  width: 1\n"},
		{"long snake", "snake:\n  initial_length: 15\n"},
		{"zero points", "scoring:\n  points_per_food: 0\n"},
		{"unknown speed", "speed:\n  default: warp\n"},
		{"unknown backend", "leaderboard:\n  backend: postgres\n"},
		{"zero size", "leaderboard:\n  size: 0\n"},
		{"unknown policy", "loop:\n  policy: lockstep\n"},
		{"fps", "loop:\n  fps: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "bad.yaml")
			writeFile(t, path, tc.yaml)

			_, err := Load(path)
			assert.True(t, errors.Is(err, ErrInvalid), "Load() error = %v", err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "grid: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}
