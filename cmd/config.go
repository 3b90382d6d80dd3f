package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/zjrosen/soundfetch/internal/config"
	"github.com/zjrosen/soundfetch/internal/paths"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the soundfetch configuration",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a commented default config file",
		Long:        `Write the default configuration with comments to path (default ./.soundfetch.yaml). An existing file is left alone unless --force is given.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := paths.ConfigFileName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			source := a.cfgUsed
			if source == "" {
				source = "defaults"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n%s", source, data)
			return err
		},
	}

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}
