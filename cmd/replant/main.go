// replant is an isometric push-puzzle for the terminal: push grass tiles
// until the flag is reachable, then watch the island grow back.
//
// Usage:
//
//	replant list              - List level packs
//	replant play [pack]       - Play a pack
//	replant menu              - Pick packs and levels interactively
//	replant scores [pack]     - Show best runs
//	replant check <path>      - Validate level files
//	replant serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible replants
//	--db <path>       - Set database path (default: ~/.replant/runs.db)
//	--config <path>   - Use a custom config YAML
//	--pace <preset>   - Animation pace: relaxed, normal, brisk
//	--levels <dir>    - Load extra level packs from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagPace      string
	flagLevelsDir string
	flagMono      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "replant",
	Short: "Replant - an isometric push puzzle in your terminal",
	Long: `Replant is a terminal puzzle on an isometric island. Push rows of
grass to clear a path to the flag; every push wears the grass down.
Reach the flag and the island grows back.

Available commands:
  list     - Show all level packs
  play     - Play a pack directly
  menu     - Interactive pack and level picker
  scores   - View best runs
  check    - Validate level files
  serve    - Start SSH server for remote play

Examples:
  replant list
  replant play classic --level 3
  replant menu --pace brisk
  replant serve --ssh :2222 --metrics :9090
  replant check ./my-levels`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.replant/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: relaxed, normal, brisk")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level packs")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Use the monochrome menu theme")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
