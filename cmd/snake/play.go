package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var flagSpeed string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round right away",
	Long: `Skip the title menu and open a round at the chosen speed.
Press Enter to start moving.

Controls:
  Arrows/WASD  - Steer (or drag with the mouse)
  Space/P      - Pause / resume
  Enter        - Start
  R            - Restart
  1/2/3        - Slow / medium / fast
  Tab          - Leaderboard
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Speeds:
  slow    - 5 cells per second
  medium  - 10 cells per second
  fast    - 15 cells per second

Examples:
  snake play
  snake play --speed fast
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Starting speed: slow, medium, fast (default from config)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, nil, false)
	if err != nil {
		return err
	}
	defer e.close()

	speed := e.cfg.StartSpeed()
	if cmd.Flags().Changed("speed") {
		if speed, err = snake.ParseSpeed(flagSpeed); err != nil {
			return err
		}
	}

	width, height := terminalSize()
	return tui.Run(e.deps(), speed, width, height)
}
