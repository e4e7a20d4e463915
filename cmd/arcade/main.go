// arcade runs the arcade variants in the terminal or in a window.
//
// Usage:
//
//	arcade list               - List available variants
//	arcade play <variant>     - Play a variant
//	arcade menu               - Pick variants interactively
//	arcade config <variant>   - Print a variant's effective rules
//
// Global flags:
//
//	--fps <rate>         - Override the variant's tick rate
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/touch-arcade/internal/games/arcade"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Touch Arcade - small arcade games on one rules engine",
	Long: `Touch Arcade runs a family of small arcade games (dodgers, runners,
platformers, grid movers, shooters) on one configurable engine. Each game
is a YAML rules variant and can be played in the terminal or in a window
with mouse and touch support.

Available commands:
  list     - Show all variants
  play     - Play a specific variant
  menu     - Interactive variant picker
  config   - Print the effective rules of a variant

Examples:
  arcade list
  arcade play dodge
  arcade play platforms --frontend window
  arcade play shooter --config ./shooter.yaml --watch
  arcade config runner > runner.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = the variant's own rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger. The terminal frontend owns the screen,
// so without --log-file its logs are discarded.
func newLogger(frontend string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := tea.LogToFile(flagLogFile, "arcade")
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case frontend == frontendTUI:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closeFn, nil
}
