package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <variant>",
	Short: "Print the effective rules of a variant",
	Long: `Print the rules a variant would run with, as YAML.

The rules come from the same search order as 'arcade play': the --config
file, then ~/.arcade/configs/<id>.yaml, then ./configs/<id>.yaml, then the
built-in default. The output is a complete rules file to start editing
from.

Examples:
  arcade config runner
  arcade config dodge > ~/.arcade/configs/dodge.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
}

func runConfig(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	v, err := config.NewLoader(logger).Load(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := config.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
