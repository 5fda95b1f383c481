package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Space/Up/W - Flap (also starts a run and retries after a crash)
  Enter      - Start / retry
  P          - Pause
  Esc/B      - Leave (title screen, paused or after a crash)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, gaps stay in the configured range

Finished runs are journaled unless --no-record is given.

Examples:
  arcade play flappy
  arcade play flappy --difficulty hard
  arcade play flappy_classic
  arcade play flappy --config ./my-flappy.yaml
  arcade play flappy --seed 42 --fps 30`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not journal finished runs")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run journal. A journal that cannot be opened is
// reported and play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	if flagDifficulty != "" && flagDifficulty != string(config.ParsePreset(flagDifficulty)) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if !flagNoRecord {
		store = openStore()
	}

	cfg := terminalConfig()
	logger.Debug("starting game", "game", gameID, "difficulty", flagDifficulty, "config", flagConfig)

	_, runErr := tui.Run(game, store, logger, cfg)
	reportConfigError(game)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// reportConfigError prints a config file problem once the terminal is back.
func reportConfigError(game registry.Game) {
	if g, ok := game.(*flappy.Game); ok && g.ConfigError() != nil {
		fmt.Fprintf(os.Stderr, "Warning: config not loaded, defaults used: %v\n", g.ConfigError())
	}
}
