package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/snake.yaml and is used if the embedded file fails to parse.
func DefaultConfig() Config {
	return Config{
		Grid:    GridConfig{Width: 20, Height: 20},
		Snake:   SnakeConfig{InitialLength: 3},
		Scoring: ScoringConfig{PointsPerFood: 10},
		Speed:   SpeedConfig{Default: "medium"},
		Food:    FoodConfig{MaxAttempts: 1000},
		Leaderboard: LeaderboardConfig{
			Size:      10,
			Backend:   "sqlite",
			Path:      "~/.snake/scores.db",
			RedisAddr: "localhost:6379",
			RedisKey:  "snake:leaderboard",
		},
		Loop: LoopConfig{
			FPS:        60,
			Policy:     "coalesce",
			MaxCatchUp: 3,
		},
		Log: LogConfig{Level: "info"},
		SSH: SSHConfig{
			Addr:        ":2222",
			HostKey:     ".ssh/snake_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
