package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a variant picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a round is quit, you return to the menu to play again. With
--frontend window the chosen variant opens in a window and the arcade
exits when the window is closed, since a process can only open one.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --frontend window`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTUI, "Frontend for the selected variant: tui or window")
	menuCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory for sprite images (window frontend)")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(frontendTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit || menuResult.GameID == "" {
			break
		}

		// Fresh seed for each round unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := playGame(menuResult.GameID, cfg, logger); err != nil {
			logger.Error("play", "game", menuResult.GameID, "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if flagFrontend == frontendWindow {
			break
		}
	}
}
