package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagJSON  bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores, best first.

Examples:
  snake scores
  snake scores --json
  snake scores --clear
  snake scores --backend redis --redis localhost:6379`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagJSON, "json", false, `Print {"entries":[...]} as JSON`)
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, os.Stderr, true)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	if flagClear {
		if err := e.board.Clear(ctx); err != nil {
			return err
		}
		e.logger.Info("leaderboard cleared", "backend", e.cfg.Leaderboard.Backend)
		fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard cleared.")
		return nil
	}

	entries, err := e.board.Top(ctx, 0)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeScoresJSON(cmd.OutOrStdout(), entries)
	}
	writeScoresTable(cmd.OutOrStdout(), entries)
	return nil
}

// scoresDoc is the JSON shape of `snake scores --json`.
type scoresDoc struct {
	Entries []storage.Entry `json:"entries"`
}

func writeScoresJSON(w io.Writer, entries []storage.Entry) error {
	if entries == nil {
		entries = []storage.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scoresDoc{Entries: entries})
}

func writeScoresTable(w io.Writer, entries []storage.Entry) {
	fmt.Fprintln(w, "High Scores - Snake")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'snake play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range entries {
		date := entry.Timestamp
		if t := entry.Time(); !t.IsZero() {
			date = t.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, date)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", entries[0].Score)
}
