package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Load builds the configuration in layers: embedded defaults, then the first
// config file found, then SNAKE_* environment variables.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()
	// Embedded defaults normally parse; DefaultConfig covers the case they don't.
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		cfg = DefaultConfig()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
	} else {
		for _, path := range searchPaths() {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
			break
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, most specific first.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath("config.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "snake.yaml"))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", filename)
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Grid.Width >= 2 && c.Grid.Height >= 2,
		"grid must be at least 2x2, got %dx%d", c.Grid.Width, c.Grid.Height)
	check(c.Snake.InitialLength >= 1 && c.Snake.InitialLength <= c.Grid.Width/2+1,
		"snake.initial_length %d does not fit the grid", c.Snake.InitialLength)
	check(c.Scoring.PointsPerFood > 0,
		"scoring.points_per_food must be positive, got %d", c.Scoring.PointsPerFood)
	check(c.Food.MaxAttempts >= 0,
		"food.max_attempts must not be negative, got %d", c.Food.MaxAttempts)
	_, err := snake.ParseSpeed(c.Speed.Default)
	check(err == nil, "speed.default %q is not slow, medium or fast", c.Speed.Default)
	check(c.Leaderboard.Size > 0,
		"leaderboard.size must be positive, got %d", c.Leaderboard.Size)
	check(c.Leaderboard.Backend == "sqlite" || c.Leaderboard.Backend == "redis",
		"leaderboard.backend %q is not sqlite or redis", c.Leaderboard.Backend)
	check(c.Loop.FPS > 0 && c.Loop.FPS <= 240,
		"loop.fps must be in 1..240, got %d", c.Loop.FPS)
	check(c.Loop.Policy == "coalesce" || c.Loop.Policy == "catchup",
		"loop.policy %q is not coalesce or catchup", c.Loop.Policy)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
