package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/platform/tui"
	"github.com/vovakirdan/touch-arcade/internal/platform/window"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

// Frontend names.
const (
	frontendTUI    = "tui"
	frontendWindow = "window"
)

var (
	flagConfig   string
	flagFrontend string
	flagWatch    bool
	flagAssets   string
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Default controls (variants may rebind them):
  Arrows/WASD  - Move
  Space        - Jump
  F            - Shoot
  P            - Pause
  R            - Restart (after game over)
  Q/Esc        - Quit

On-screen buttons can be clicked in the terminal or tapped in the window.

Examples:
  arcade play dodge
  arcade play platforms --frontend window
  arcade play grid --fps 20 --seed 42
  arcade play shooter --config ./shooter.yaml --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	playCmd.Flags().StringVar(&flagFrontend, "frontend", frontendTUI, "Frontend: tui or window")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the rules file on change (applied on restart)")
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory for sprite images (window frontend)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(flagFrontend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	err = playGame(gameID, runtimeConfig(), logger)
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the round for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// playGame creates the variant and runs it on the selected frontend until
// the player quits.
func playGame(gameID string, cfg core.RuntimeConfig, logger *log.Logger) error {
	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Watch:      flagWatch,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("close", "game", gameID, "err", err)
		}
	}()

	logger.Info("starting", "game", gameID, "frontend", flagFrontend, "tps", game.TickRate())

	switch flagFrontend {
	case frontendTUI:
		return tui.Run(game, cfg, logger)
	case frontendWindow:
		scene, ok := game.(window.Scene)
		if !ok {
			return errors.New("window frontend: variant cannot be drawn as shapes")
		}
		return window.Run(scene, cfg, window.Options{AssetDir: flagAssets, Logger: logger})
	default:
		return fmt.Errorf("unknown frontend %q (want %s or %s)", flagFrontend, frontendTUI, frontendWindow)
	}
}
