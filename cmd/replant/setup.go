package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/replant/internal/config"
	"github.com/vovakirdan/replant/internal/core"
	"github.com/vovakirdan/replant/internal/games/replant"
	"github.com/vovakirdan/replant/internal/games/replant/levels"
	"github.com/vovakirdan/replant/internal/platform/tui"
	"github.com/vovakirdan/replant/internal/registry"
	"github.com/vovakirdan/replant/internal/storage"
)

// cliLogger reports to stderr for non-interactive commands.
var cliLogger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "replant",
})

// setup loads the configuration and registers user level packs before
// any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadReplant(flagConfig)
	if err != nil {
		return err
	}
	if flagPace != "" {
		config.ApplyPacePreset(&cfg, config.PacePreset(flagPace))
	}
	if err := cfg.Validate(replant.Table().Codes()); err != nil {
		return err
	}
	replant.SetConfig(cfg)

	if flagMono {
		tui.SetTheme(tui.MonochromeTheme())
	}

	if flagLevelsDir != "" {
		if err := registerLevels(flagLevelsDir); err != nil {
			return err
		}
	}
	return nil
}

// registerLevels loads every pack under dir and makes it playable.
func registerLevels(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("levels directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("levels directory: %s is not a directory", dir)
	}

	packs, err := levels.NewLoader(dir, replant.Table()).WithLogger(cliLogger).LoadAll()
	if err != nil {
		return fmt.Errorf("loading levels from %s: %w", dir, err)
	}
	for _, p := range packs {
		if err := replant.RegisterPack(p); err != nil {
			cliLogger.Warn("skipping pack", "pack", p.ID, "err", err)
		}
	}
	return nil
}

// packLevels returns the levels of a registered pack.
func packLevels(packID string) (levels.Pack, error) {
	game, err := registry.Create(packID)
	if err != nil {
		return levels.Pack{}, err
	}
	rg, ok := game.(*replant.Game)
	if !ok {
		return levels.Pack{}, fmt.Errorf("pack %q has no level list", packID)
	}
	return rg.Pack(), nil
}

// resolveLevel turns a level number or id into a pack level index.
func resolveLevel(packID, ref string) (int, error) {
	pack, err := packLevels(packID)
	if err != nil {
		return 0, err
	}
	return pack.Resolve(ref)
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the runs database, or returns nil with a warning.
// Play works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// playOptions returns the tui options for local play.
func playOptions(store *storage.Store, logger *log.Logger) tui.Options {
	return tui.Options{
		Store:  store,
		Logger: logger,
		Latch:  replant.Config().Input.Latch(),
	}
}
