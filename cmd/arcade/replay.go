package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a journaled run",
	Long: `Re-simulate a journaled run from its seed, tunables and flap ticks and
check that it ends with the recorded score and cause. Any unique prefix of at
least four characters of the run id is accepted.

With --watch the run is played back in the terminal instead.

Examples:
  arcade replay 3f2a9c1e
  arcade replay 3f2a --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	entry, err := store.Run(args[0])
	store.Close()
	switch {
	case errors.Is(err, storage.ErrRunNotFound), errors.Is(err, storage.ErrAmbiguousRun):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcade runs' to see journaled runs.")
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagWatch {
		game := flappy.NewReplay(entry.GameID, entry.Config, entry.Recording())
		cfg := terminalConfig()
		cfg.TickRate = entry.TickRate
		if _, err := tui.Run(game, nil, logger, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
			os.Exit(1)
		}
		if err := game.ReplayError(); err != nil {
			fmt.Fprintf(os.Stderr, "Replay diverged: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger.Debug("replaying run", "id", entry.ID, "seed", entry.Seed, "ticks", entry.Ticks, "flaps", len(entry.Flaps))
	snap, err := sim.Replay(entry.Config, entry.Recording())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay of %s failed: %v\n", entry.ID, err)
		os.Exit(1)
	}

	fmt.Printf("Run %s verified\n", entry.ID)
	fmt.Printf("  Game:   %s\n", entry.GameID)
	fmt.Printf("  Seed:   %d\n", entry.Seed)
	fmt.Printf("  Score:  %d\n", snap.Score)
	fmt.Printf("  Cause:  %s\n", snap.Cause)
	fmt.Printf("  Length: %d ticks (%.1fs), %d flaps\n", entry.Ticks, entry.Duration().Seconds(), len(entry.Flaps))
}
