package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/replant/internal/games/replant"
	"github.com/vovakirdan/replant/internal/platform/tui"
	"github.com/vovakirdan/replant/internal/registry"
	"github.com/vovakirdan/replant/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick packs and levels interactively",
	Long: `Start replant in interactive menu mode.

Pick a pack, then a level; cleared levels are marked and "Continue"
resumes after the highest one cleared. Leaving a level returns to
the pack list.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best runs
  Esc/B        - Back
  Q            - Quit

Examples:
  replant menu
  replant menu --fps 30
  replant menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := fileLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open run storage
	store := openStore()

	cfg := runtimeConfig()
	lastPack := ""

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, lastPack)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		packID := menuResult.GameID
		if packID == "" {
			break
		}
		lastPack = packID

		// Create game instance
		game, err := registry.Create(packID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Show level selector
		var names []string
		if sel, ok := game.(registry.LevelSelector); ok {
			names = sel.LevelNames()
		}
		levelResult, err := tui.RunLevelSelector(game.Title(), names, progress(store, packID), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if levelResult.Quit {
			break
		}
		if levelResult.Selection == nil {
			continue // Back to pack list
		}
		replant.SetStartLevel(packID, levelResult.Selection.Level)

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		back, err := tui.Run(game, cfg, playOptions(store, logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}

// progress returns the stored progress of a pack.
func progress(store *storage.Store, packID string) int {
	if store == nil {
		return storage.NoProgress
	}
	p, err := store.Progress(packID)
	if err != nil {
		return storage.NoProgress
	}
	return p
}
