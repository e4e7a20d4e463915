package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered variant with its movement and scoring rules.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, rulesSummary(g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a variant.")
}

// rulesSummary describes a variant's embedded rules in a few words.
func rulesSummary(id string) string {
	v, err := config.Default(id)
	if err != nil {
		return "-"
	}
	s := fmt.Sprintf("%s, %s hits, %s scoring", v.Movement.Mode, v.Rules.OnLethal, v.Rules.Scoring)
	if v.Physics.Gravity > 0 {
		s += ", gravity"
	}
	return s
}
