// snake is the classic Snake game for the terminal.
//
// Usage:
//
//	snake                    - Title menu: pick a speed, play, repeat
//	snake play               - Start a round right away
//	snake scores             - Show the leaderboard
//	snake serve              - Host the game over SSH
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--db <path>         - SQLite leaderboard path (default: ~/.snake/scores.db)
//	--backend <name>    - Leaderboard backend: sqlite or redis
//	--redis <addr>      - Redis address for the redis backend
//	--seed <value>      - RNG seed for reproducible food placement
//	--fps <rate>        - Frame rate of the terminal host
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagBackend  string
	flagRedis    string
	flagSeed     int64
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic grid game: steer the snake to the food, grow,
and avoid the walls and your own tail.

Without a subcommand it opens the title menu.

Available commands:
  play     - Start a round right away
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  snake
  snake play --speed fast
  snake scores --json
  snake serve --ssh :2222 --backend redis`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMenu,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a config YAML file")
	pf.StringVar(&flagDBPath, "db", "", "Path to the SQLite scores database")
	pf.StringVar(&flagBackend, "backend", "", "Leaderboard backend: sqlite or redis")
	pf.StringVar(&flagRedis, "redis", "", "Redis address (host:port) for the redis backend")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagFPS, "fps", 0, "Frame rate (frames per second)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config and applies the global flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Leaderboard.Path = flagDBPath
	}
	if flags.Changed("backend") {
		cfg.Leaderboard.Backend = flagBackend
	}
	if flags.Changed("redis") {
		cfg.Leaderboard.RedisAddr = flagRedis
	}
	if flags.Changed("fps") {
		cfg.Loop.FPS = flagFPS
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// env is what every command needs: config, logger and the leaderboard.
type env struct {
	cfg      config.Config
	logger   *log.Logger
	board    storage.Leaderboard
	closeLog func() error
}

// setup loads config and opens the logger and the leaderboard. With
// requireBoard false a board that cannot be opened is reported and the game
// runs without persistence.
func setup(cmd *cobra.Command, logTo io.Writer, requireBoard bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level, "snake", logTo)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logger, closeLog: closeLog}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	board, err := storage.Open(ctx, storage.Options{
		Backend:   cfg.Leaderboard.Backend,
		Path:      cfg.Leaderboard.Path,
		RedisAddr: cfg.Leaderboard.RedisAddr,
		RedisKey:  cfg.Leaderboard.RedisKey,
		Size:      cfg.Leaderboard.Size,
	})
	switch {
	case err == nil:
		e.board = board
	case requireBoard:
		e.close()
		return nil, err
	default:
		// Continue without storage - the game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard: %v\n", err)
		logger.Warn("leaderboard unavailable", "backend", cfg.Leaderboard.Backend, "error", err)
	}

	logger.Debug("configured", "backend", cfg.Leaderboard.Backend, "grid",
		fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height), "fps", cfg.Loop.FPS)
	return e, nil
}

func (e *env) deps() tui.Deps {
	return tui.Deps{
		Config: e.cfg,
		Board:  e.board,
		Logger: e.logger,
		Seed:   flagSeed,
	}
}

func (e *env) close() {
	if e.board != nil {
		if err := e.board.Close(); err != nil {
			e.logger.Warn("closing leaderboard", "error", err)
		}
	}
	_ = e.closeLog()
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runMenu(cmd *cobra.Command, _ []string) error {
	// Logs go to --log-file or nowhere; stderr would draw over the alt screen.
	e, err := setup(cmd, nil, false)
	if err != nil {
		return err
	}
	defer e.close()

	width, height := terminalSize()
	return tui.Run(e.deps(), 0, width, height)
}
