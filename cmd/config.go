package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/seedtool/internal/configs"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the seedtool config file",
		Long: `Provides commands for managing the config file that supplies flag defaults.

Examples:
  # Write a config file with the built-in defaults
  seedtool config init

  # Show the config file in use
  seedtool config show`,
	}

	configCmd.AddCommand(newConfigInitCmd(opts))
	configCmd.AddCommand(newConfigShowCmd(opts))

	return configCmd
}

// resolveConfigPath returns --config when given, otherwise the default path.
func resolveConfigPath(opts *rootOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return configs.DefaultPath()
}
