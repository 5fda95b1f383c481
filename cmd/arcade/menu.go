package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant, then pick a
difficulty. Tab opens the run journal, where Enter replays a run.
After a game ends, Esc returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Run journal
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	flappy.SetConfigPath(flagConfig)
	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsRuns {
			if !browseRuns(store, cfg) {
				return
			}
			continue
		}

		if menuResult.GameID == "" {
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if t, ok := game.(registry.Tunable); ok && game.ID() != flappy.ClassicID {
			selection, selErr := tui.RunDifficultySelector(game.Title(), cfg)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if selection == nil {
				continue
			}
			t.SetPreset(selection.Preset)
		}

		playFromMenu(game, store, cfg)
	}
}

// browseRuns shows the journal and replays picked runs until the user goes
// back. It returns false if the user quit.
func browseRuns(store *storage.Store, cfg core.RuntimeConfig) bool {
	for {
		result, err := tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}

		if result.Selected == nil {
			return result.Back
		}

		entry := result.Selected
		logger.Debug("watching replay", "id", entry.ID)
		game := flappy.NewReplay(entry.GameID, entry.Config, entry.Recording())
		playFromMenu(game, nil, cfg)
	}
}

// playFromMenu runs one game with a fresh seed, then hands control back to
// the menu whether the player went back or quit.
func playFromMenu(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) {
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if _, err := tui.Run(game, store, logger, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
	reportConfigError(game)
}
