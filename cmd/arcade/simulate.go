package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagVariant  string
	flagSimRuns  int
	flagSimTicks int
	flagSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the autopilot without a terminal",
	Long: `Fly the built-in autopilot through one or more runs headless and print
how each run ended. Every run is replayed from its recording to check that
the simulation is deterministic. --save journals the runs.

Examples:
  arcade simulate
  arcade simulate --seed 42 --runs 10
  arcade simulate --variant flappy_classic --ticks 3600 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagVariant, "variant", flappy.ID, "Variant to simulate")
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Tick limit per run")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Journal finished runs")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(_ *cobra.Command, _ []string) {
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)

	created, err := registry.Create(flagVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*flappy.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q cannot be simulated\n", flagVariant)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
			os.Exit(1)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})
	if err := game.ConfigError(); err != nil {
		logger.Warn("config not loaded, using defaults", "error", err)
	}
	logger.Debug("simulating", "variant", flagVariant, "seed", seed, "runs", flagSimRuns)

	failed := simulateRuns(os.Stdout, game, store, flagSimRuns, flagSimTicks)

	if store != nil {
		store.Close()
	}
	if failed {
		os.Exit(1)
	}
}

// simulateRuns flies up to runs autopilot runs on a reset game, replays each
// one against its recording and journals it when store is set. It reports
// whether any replay diverged.
func simulateRuns(w io.Writer, game *flappy.Game, store *storage.Store, runs, limit int) bool {
	pilot := flappy.NewAutopilot(game.Config())
	failed := false

	for i := 1; i <= runs; i++ {
		rec, ok := flyOnce(game, pilot, limit)
		if !ok {
			fmt.Fprintf(w, "run %d: still flying after %d ticks, score %d\n", i, limit, game.State().Score)
			break
		}

		verdict := "verified"
		if _, err := sim.Replay(game.Config(), *rec); err != nil {
			verdict = err.Error()
			failed = true
		}
		fmt.Fprintf(w, "run %d: seed %d  score %d  cause %s  ticks %d  %s\n",
			i, rec.Seed, rec.Score, rec.Cause, rec.Ticks, verdict)

		if store != nil {
			id, err := store.SaveRun(game.ID(), game.Config(), *rec)
			if err != nil {
				logger.Error("could not save run", "error", err)
				continue
			}
			logger.Info("run saved", "id", id)
		}
	}

	return failed
}

// flyOnce lets the autopilot fly until the current run ends or the tick
// limit is hit, starting a run if none is in progress.
func flyOnce(game *flappy.Game, pilot *flappy.Autopilot, limit int) (*sim.Recording, bool) {
	for t := 0; t < limit; t++ {
		in := core.NewInputFrame()
		if pilot.Decide(game.Snapshot()) {
			in.Set(core.ActionFlap)
		}
		if game.Step(in).RunEnded {
			return game.LastRun(), true
		}
	}
	return nil, false
}
