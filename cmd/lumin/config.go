package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumin/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the tuning configuration after the config file and the
difficulty preset are applied. Save the output as ~/.lumin/lumin.yaml
to customise it.

Examples:
  lumin config > ~/.lumin/lumin.yaml
  lumin config --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
