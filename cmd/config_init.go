package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/seedtool/internal/configs"
	"github.com/PolarWolf314/seedtool/internal/ui"
)

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the built-in defaults",
		Long: `Writes a config file holding every default, ready to be edited.

Refuses to overwrite an existing file unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting config init command")

			path, err := resolveConfigPath(opts)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve config path: %v", err)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return Logger.ErrorfAndReturn("Failed to check %s: %v", path, err)
			}

			Logger.Debugf("Writing defaults to %s", path)
			if err := configs.Save(path, configs.Default()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Wrote config to "+ui.Path.Sprint(path))
			return nil
		},
	}

	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return configInitCmd
}
