package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/replant/internal/registry"
	"github.com/vovakirdan/replant/internal/storage"
)

var (
	flagRecent      int
	flagScoresLevel string
	flagRunID       string
	flagReset       bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [pack]",
	Short: "Show best runs for a pack",
	Long: `Display the best run of every cleared level in a pack, ranked by
moves plus pushes, then time. Without a pack, prints a summary of
every pack that has runs.

Examples:
  replant scores
  replant scores classic
  replant scores classic --level hello-2
  replant scores classic --reset
  replant scores --run 6f1c...
  replant scores --recent 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent runs of every pack")
	scoresCmd.Flags().StringVar(&flagScoresLevel, "level", "", "Rank the runs of one level (number or id)")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show one run by its id")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget the pack's progress, keeping its runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the pack's runs and progress")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunID != "" {
		printRun(store, flagRunID)
		return
	}

	if len(args) == 0 {
		if flagReset || flagClear || flagScoresLevel != "" {
			fmt.Fprintln(os.Stderr, "Error: --reset, --clear and --level need a pack")
			os.Exit(1)
		}
		printSummary(store)
		printRecent(store)
		return
	}

	packID := args[0]

	// Check if pack exists
	if !registry.Exists(packID) {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'replant list' to see available packs.")
		os.Exit(1)
	}

	if flagReset || flagClear {
		if err := resetPack(store, packID, flagClear); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagScoresLevel != "" {
		printLevelRuns(store, packID, flagScoresLevel)
		return
	}

	// Get pack title
	game, err := registry.Create(packID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Get best runs
	runs, err := store.PackBests(packID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	// Display runs
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'replant play %s' to record the first one!\n", packID)
		return
	}

	printRuns(runs)

	stats, err := store.GetPackStats(packID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Cleared: %d levels in %d runs  |  Moves: %d  |  Pushes: %d\n",
			stats.LevelsCleared, stats.Runs, stats.TotalMoves, stats.TotalPushes)
	}

}

// printRuns prints a run table.
func printRuns(runs []storage.Run) {
	// Print header
	fmt.Printf("  %-5s  %-20s  %-5s  %-6s  %-6s  %-8s  %s\n", "Level", "ID", "Steps", "Moves", "Pushes", "Time", "Date")
	fmt.Printf("  %-5s  %-20s  %-5s  %-6s  %-6s  %-8s  %s\n", "-----", "--", "-----", "-----", "------", "----", "----")

	for _, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-5d  %-20s  %-5d  %-6d  %-6d  %-8s  %s\n",
			r.LevelIndex+1, r.LevelID, r.Steps(), r.Moves, r.Pushes, r.Duration.Round(100*time.Millisecond), dateStr)
	}
}

// printLevelRuns prints the ranking of one level.
func printLevelRuns(store *storage.Store, packID, ref string) {
	pack, err := packLevels(packID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	index, err := pack.Resolve(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lvl, err := pack.Level(index)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runs, err := store.BestRuns(packID, lvl.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s, level %d (%s)\n", pack.Name, index+1, lvl.Name)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	printRuns(runs)
}

// printRun prints a single run.
func printRun(store *storage.Store, runID string) {
	run, err := store.RunByID(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run %q\n", runID)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n", run.RunID)
	fmt.Println()
	fmt.Printf("  Pack:    %s\n", run.PackID)
	fmt.Printf("  Level:   %d (%s)\n", run.LevelIndex+1, run.LevelID)
	fmt.Printf("  Steps:   %d (%d moves, %d pushes)\n", run.Steps(), run.Moves, run.Pushes)
	fmt.Printf("  Time:    %s\n", run.Duration.Round(100*time.Millisecond))
	fmt.Printf("  Date:    %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	if run.Session != "" {
		fmt.Printf("  Session: %s\n", run.Session)
	}
}

// resetPack forgets a pack's progress. With deleteRuns set, its runs are
// deleted too.
func resetPack(store *storage.Store, packID string, deleteRuns bool) error {
	if deleteRuns {
		if err := store.ClearRuns(packID); err != nil {
			return err
		}
		cliLogger.Info("cleared runs and progress", "pack", packID)
		return nil
	}
	if err := store.ResetProgress(packID); err != nil {
		return err
	}
	cliLogger.Info("reset progress", "pack", packID)
	return nil
}

// printSummary prints one line per registered pack.
func printSummary(store *storage.Store) {
	packs := registry.List()
	fmt.Println("Pack progress:")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-6s  %s\n", "Pack", "Cleared", "Runs", "Last played")
	fmt.Printf("  %-16s  %-8s  %-6s  %s\n", "----", "-------", "----", "-----------")
	for _, p := range packs {
		stats, err := store.GetPackStats(p.ID)
		if err != nil {
			continue
		}
		last := "-"
		if !stats.LastPlayed.IsZero() {
			last = stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-8d  %-6d  %s\n", p.ID, stats.LevelsCleared, stats.Runs, last)
	}
}

// printRecent prints the most recent runs across packs.
func printRecent(store *storage.Store) {
	if flagRecent <= 0 {
		return
	}
	recent, err := store.RecentRuns(flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Println()
	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %s\n", "Pack", "Level", "Moves", "Pushes", "Date")
	fmt.Printf("  %-16s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for _, r := range recent {
		fmt.Printf("  %-16s  %-5d  %-6d  %-6d  %s\n",
			r.PackID, r.LevelIndex+1, r.Moves, r.Pushes, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
