package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `The config command prints the configuration after defaults, the config
file and OVERLAY_* environment variables have been merged.

Example:
  overlayctl config
  OVERLAY_QUEUE_CAPACITY=64 overlayctl config --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig()
		},
	}
	return cmd
}

func runConfig() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cfg)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	printInfo("%s", out)
	return nil
}
