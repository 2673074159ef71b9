package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/replant/internal/games/replant"
	"github.com/vovakirdan/replant/internal/platform/tui"
	"github.com/vovakirdan/replant/internal/registry"
)

const defaultPack = "classic"

var (
	flagLevel   string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing the specified pack (default: classic).

Controls:
  W/A/S/D      - Move (hold two for a diagonal screen direction)
  9/3/1/7      - Move diagonally on screen
  Arrow keys   - Push the row in front of you
  R            - Restart level
  ]/N  [       - Next / previous level
  P            - Pause
  Ctrl+S       - Screenshot
  Esc/B        - Back
  Q/Ctrl+C     - Quit

Examples:
  replant play
  replant play classic --level 5
  replant play classic --level hello-2
  replant play mypack --levels ./levels
  replant play --pace relaxed --log-file replant.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Start at level N (1-based) or at a level id")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func runPlay(cmd *cobra.Command, args []string) {
	packID := defaultPack
	if len(args) > 0 {
		packID = args[0]
	}

	// Check if pack exists
	if !registry.Exists(packID) {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'replant list' to see available packs.")
		os.Exit(1)
	}

	logger, closeLog, err := fileLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := runtimeConfig()

	if flagLevel != "" {
		index, err := resolveLevel(packID, flagLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		replant.SetStartLevel(packID, index+1)
	}

	// Create game instance
	game, err := registry.Create(packID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open run storage
	store := openStore()

	// Run the game
	_, runErr := tui.Run(game, cfg, playOptions(store, logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// fileLogger returns a logger writing to path, or a discarding logger when
// path is empty. A full-screen TUI owns stderr while it runs.
func fileLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "replant",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
