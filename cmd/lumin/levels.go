package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumin/internal/levels"
)

var flagExportDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, export or check level files",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels in play order",
	Args:  cobra.NoArgs,
	RunE:  runLevelsList,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the levels as YAML files",
	Long: `Write every level as a YAML file, one per level. The files can be
edited and played back with --levels.

Examples:
  lumin levels export --dir ./mylevels`,
	Args: cobra.NoArgs,
	RunE: runLevelsExport,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Validate a directory of level files",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsCheck,
}

func init() {
	levelsExportCmd.Flags().StringVar(&flagExportDir, "dir", "levels", "Output directory")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsExportCmd)
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevelsList(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	lvls, err := loadLevels(logger)
	if err != nil {
		return err
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range lvls {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	fmt.Printf("  %-4s  %-*s  %-10s  %5s  %7s\n", "ID", maxNameLen, "Name", "Kind", "Books", "Objects")
	fmt.Printf("  %-4s  %-*s  %-10s  %5s  %7s\n", "--", maxNameLen, "----", "----", "-----", "-------")
	for _, lvl := range lvls {
		fmt.Printf("  %-4d  %-*s  %-10s  %5d  %7d\n",
			lvl.ID, maxNameLen, lvl.Name, lvl.Kind, len(lvl.BookIDs()), len(lvl.Objects))
	}

	fmt.Println()
	fmt.Println("Run 'lumin play --level <id>' to start at a level.")
	return nil
}

func runLevelsExport(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	lvls, err := loadLevels(logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(flagExportDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", flagExportDir, err)
	}

	for _, lvl := range lvls {
		data, err := levels.Marshal(lvl)
		if err != nil {
			return fmt.Errorf("level %d: %w", lvl.ID, err)
		}
		path := filepath.Join(flagExportDir, levelFileName(lvl))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("exported level", "id", lvl.ID, "path", path)
	}
	return nil
}

// levelFileName builds names like 02_the_living_puzzle.yaml.
func levelFileName(lvl levels.Level) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, lvl.Name)
	return fmt.Sprintf("%02d_%s.yaml", lvl.ID, slug)
}

func runLevelsCheck(cmd *cobra.Command, args []string) error {
	lvls, err := levels.NewLoader(args[0]).LoadAll()
	if err != nil {
		return err
	}

	warnings := 0
	for _, lvl := range lvls {
		for _, w := range levels.Warnings(lvl) {
			fmt.Printf("level %d: %s\n", lvl.ID, w)
			warnings++
		}
	}
	fmt.Printf("%d levels ok, %d warnings\n", len(lvls), warnings)
	return nil
}
