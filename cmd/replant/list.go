package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/replant/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level packs",
	Long:  `Shows every registered level pack and its levels.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	fmt.Println("Available packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	// Print packs with their levels
	for _, p := range packs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)

		game, err := registry.Create(p.ID)
		if err != nil {
			continue
		}
		if sel, ok := game.(registry.LevelSelector); ok {
			for i, name := range sel.LevelNames() {
				fmt.Printf("  %-*s    %2d. %s\n", maxIDLen, "", i+1, name)
			}
		}
	}

	fmt.Println()
	fmt.Println("Run 'replant play <id>' to play a pack.")
}
