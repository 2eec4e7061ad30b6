// lumin is a deterministic 2D puzzle platformer played in the terminal.
//
// Usage:
//
//	lumin play               - Play the campaign
//	lumin levels list        - List the campaign levels
//	lumin levels export      - Write the embedded levels as YAML files
//	lumin levels check <dir> - Validate a directory of level files
//	lumin simulate <script>  - Run a key script without a terminal
//	lumin config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--config <path>       - Use a custom tuning file
//	--difficulty <preset> - easy, normal or hard
//	--levels <dir>        - Load levels from a directory instead of the campaign
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumin/internal/config"
	"github.com/vovakirdan/lumin/internal/game/campaign"
	"github.com/vovakirdan/lumin/internal/levels"

	// Register the stage kinds
	_ "github.com/vovakirdan/lumin/internal/game/stage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lumin",
	Short: "Lumin - a puzzle platformer in a living library",
	Long: `Lumin is a small puzzle platformer. Guide Lumin through the
shifting halls of the library, gather the books of memory and
face the Guardian who sealed the exits.

Available commands:
  play      - Play the campaign
  levels    - List, export or check level files
  simulate  - Run a key script headlessly and print events
  config    - Print the effective configuration

Examples:
  lumin play
  lumin play --difficulty easy
  lumin levels export --dir ./mylevels
  lumin play --levels ./mylevels
  lumin simulate run.yaml --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files to play instead of the campaign")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback, which play sets to io.Discard to keep the alt screen clean.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lumin",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig reads the tuning file and applies the difficulty preset.
func loadConfig(logger *log.Logger) (config.LuminConfig, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.LuminConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	logger.Debug("config loaded", "path", flagConfig, "difficulty", preset)
	return cfg, nil
}

// loadLevels returns the embedded campaign or the levels under --levels.
func loadLevels(logger *log.Logger) ([]levels.Level, error) {
	var (
		lvls []levels.Level
		err  error
	)
	if flagLevelsDir != "" {
		lvls, err = levels.NewLoader(flagLevelsDir).LoadAll()
	} else {
		lvls, err = levels.Campaign()
	}
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found in %s", flagLevelsDir)
	}

	for _, lvl := range lvls {
		for _, w := range levels.Warnings(lvl) {
			logger.Warn("level check", "level", lvl.ID, "warning", w)
		}
	}
	return lvls, nil
}

// newSession wires config, levels and logging into a campaign session.
func newSession(logger *log.Logger) (*campaign.Session, config.LuminConfig, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, cfg, err
	}
	lvls, err := loadLevels(logger)
	if err != nil {
		return nil, cfg, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("session ready", "levels", len(lvls), "seed", seed)

	return campaign.New(lvls, campaign.Options{Config: cfg, Seed: seed, Logger: logger}), cfg, nil
}
