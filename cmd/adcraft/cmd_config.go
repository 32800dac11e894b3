package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/config"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the client configuration",
	}
	cmd.AddCommand(c.configInitCmd())
	return cmd
}

func (c *cli) configInitCmd() *cobra.Command {
	var path string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a YAML file",
		Long: `Write the configuration currently in effect, including --api-url and
ADCRAFT_API_URL overrides, so later runs pick it up without flags.`,
		Example: `  adcraft --api-url http://localhost:8000 config init
  adcraft config init --path ~/.adcraft/config.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.ProjectConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.Save(c.cfg, path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Destination file (default: .adcraft/config.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
