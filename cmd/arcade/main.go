// arcade is a terminal flappy bird with a replayable run journal.
//
// Usage:
//
//	arcade list              - List available variants
//	arcade play <game>       - Play a variant
//	arcade menu              - Start menu to pick variants interactively
//	arcade serve             - Start SSH server for remote play
//	arcade runs              - List journaled runs
//	arcade replay <run-id>   - Verify or watch a journaled run
//	arcade simulate          - Run the autopilot headless
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logger is the root logger, set up before any command runs.
var logger = log.New(io.Discard)

// logFile is the open --log-file, if any.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Flappy - a flappy bird in your terminal",
	Long: `TUI Flappy is a terminal flappy bird on a fixed-step simulation.
Every finished run is journaled with its seed and flap ticks and can be
replayed tick for tick.

Available commands:
  list      - Show all available variants
  play      - Play a specific variant directly
  menu      - Interactive picker menu
  serve     - Start SSH server for remote play
  runs      - List journaled runs
  replay    - Verify or watch a journaled run
  simulate  - Run the autopilot without a terminal

Examples:
  arcade list
  arcade play flappy
  arcade menu
  arcade serve --ssh :2222
  arcade runs --limit 5
  arcade replay 3f2a9c1e --watch`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simulateCmd)
}

// interactive lists commands that take over the terminal. Their logs go to
// --log-file or nowhere so they do not tear the alt screen.
var interactive = map[string]bool{
	"play": true,
	"menu": true,
}

// setupLogger builds the root logger from the global flags.
func setupLogger(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	case interactive[cmd.Name()] || (cmd.Name() == "replay" && flagWatch) || (cmd.Name() == "runs" && flagBrowse):
		out = io.Discard
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return nil
}
