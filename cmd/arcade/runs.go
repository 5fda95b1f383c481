package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsGame  string
	flagRunsLimit int
	flagBrowse    bool
	flagClear     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent runs in the journal, newest first.

With --game, only runs of that variant are listed along with its stats.
--browse opens the interactive journal, where Enter replays a run.

Examples:
  arcade runs
  arcade runs --game flappy --limit 5
  arcade runs --browse
  arcade runs --game flappy_classic --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsGame, "game", "", "Only show runs of this variant")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive journal")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of --game")
}

func runRuns(_ *cobra.Command, _ []string) {
	if flagRunsGame != "" && !registry.Exists(flagRunsGame) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", flagRunsGame)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		browseRuns(store, terminalConfig())
		return

	case flagClear:
		if flagRunsGame == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs --game")
			os.Exit(1)
		}
		if err := store.DeleteRuns(flagRunsGame); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("runs deleted", "game", flagRunsGame)
		return
	}

	runs, err := store.RecentRuns(flagRunsGame, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play flappy' to journal your first run!")
		return
	}

	printRuns(runs)

	if flagRunsGame != "" {
		stats, err := store.Stats(flagRunsGame)
		if err == nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Average score: %.1f  Time flown: %.0fs\n",
				stats.RunsCount, stats.AvgScore, ticksToSeconds(stats.TotalTicks))
		}
	}

	fmt.Println()
	fmt.Println("Run 'arcade replay <id>' to verify or watch a run.")
}

// printRuns writes the run table to stdout.
func printRuns(runs []storage.RunEntry) {
	fmt.Printf("  %-8s  %-14s  %-5s  %-8s  %-7s  %s\n", "ID", "Game", "Score", "Cause", "Length", "Date")
	fmt.Printf("  %-8s  %-14s  %-5s  %-8s  %-7s  %s\n", "--", "----", "-----", "-----", "------", "----")

	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-14s  %-5d  %-8s  %-7s  %s\n",
			id, r.GameID, r.Score, r.Cause,
			fmt.Sprintf("%.1fs", r.Duration().Seconds()),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

// ticksToSeconds converts ticks at the --fps rate to seconds.
func ticksToSeconds(ticks int64) float64 {
	if flagFPS <= 0 {
		return float64(ticks) / 60
	}
	return float64(ticks) / float64(flagFPS)
}
