// Package config provides YAML-based configuration loading for the Snake
// game, with embedded defaults and SNAKE_* environment overrides.
package config

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Config contains all configuration for the game and its hosts.
type Config struct {
	Grid        GridConfig        `yaml:"grid"`
	Snake       SnakeConfig       `yaml:"snake"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Speed       SpeedConfig       `yaml:"speed"`
	Food        FoodConfig        `yaml:"food"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Loop        LoopConfig        `yaml:"loop"`
	Log         LogConfig         `yaml:"log"`
	SSH         SSHConfig         `yaml:"ssh"`
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width" env:"SNAKE_GRID_WIDTH"`
	Height int `yaml:"height" env:"SNAKE_GRID_HEIGHT"`
}

// SnakeConfig defines the starting snake.
type SnakeConfig struct {
	InitialLength int `yaml:"initial_length" env:"SNAKE_INITIAL_LENGTH"`
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	PointsPerFood int `yaml:"points_per_food" env:"SNAKE_POINTS_PER_FOOD"`
}

// SpeedConfig selects the starting speed by name.
type SpeedConfig struct {
	Default string `yaml:"default" env:"SNAKE_SPEED"`
}

// FoodConfig tunes food placement.
type FoodConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"SNAKE_FOOD_MAX_ATTEMPTS"`
}

// LeaderboardConfig selects and configures score persistence.
type LeaderboardConfig struct {
	Size      int    `yaml:"size" env:"SNAKE_LEADERBOARD_SIZE"`
	Backend   string `yaml:"backend" env:"SNAKE_LEADERBOARD_BACKEND"`
	Path      string `yaml:"path" env:"SNAKE_DB"`
	RedisAddr string `yaml:"redis_addr" env:"SNAKE_REDIS_ADDR"`
	RedisKey  string `yaml:"redis_key" env:"SNAKE_REDIS_KEY"`
}

// LoopConfig tunes the frame source and tick policy.
type LoopConfig struct {
	FPS        int    `yaml:"fps" env:"SNAKE_FPS"`
	Policy     string `yaml:"policy" env:"SNAKE_LOOP_POLICY"` // "coalesce" or "catchup"
	MaxCatchUp int    `yaml:"max_catchup" env:"SNAKE_LOOP_MAX_CATCHUP"`
}

// LogConfig configures the charm logger.
type LogConfig struct {
	Level string `yaml:"level" env:"SNAKE_LOG_LEVEL"`
	File  string `yaml:"file" env:"SNAKE_LOG_FILE"`
}

// SSHConfig configures `snake serve`.
type SSHConfig struct {
	Addr        string        `yaml:"addr" env:"SNAKE_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"SNAKE_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SNAKE_SSH_IDLE_TIMEOUT"`
}

// Rules converts the config into game rules.
func (c Config) Rules() snake.Rules {
	return snake.Rules{
		GridWidth:       c.Grid.Width,
		GridHeight:      c.Grid.Height,
		InitialLength:   c.Snake.InitialLength,
		PointsPerFood:   c.Scoring.PointsPerFood,
		FoodMaxAttempts: c.Food.MaxAttempts,
	}
}

// StartSpeed returns the configured starting speed, falling back to medium
// for an unknown name. Validate rejects unknown names up front.
func (c Config) StartSpeed() snake.Speed {
	s, err := snake.ParseSpeed(c.Speed.Default)
	if err != nil {
		return snake.SpeedMedium
	}
	return s
}

// FrameInterval is the time between frames of the terminal host.
func (c Config) FrameInterval() time.Duration {
	if c.Loop.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Loop.FPS)
}
