package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/loopyfoods/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and --db override are
applied. With --defaults, print the built-in configuration file instead,
which is a good starting point for ~/.loopyfoods/config.yaml.

Examples:
  loopyfoods config
  loopyfoods config --defaults > ~/.loopyfoods/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
