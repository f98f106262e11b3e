package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/seedtool/internal/configs"
	"github.com/PolarWolf314/seedtool/internal/ui"
)

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the config file in use",
		Long: `Displays the keys set by the config file. Flags not listed use their
built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting config show command")

			path, err := resolveConfigPath(opts)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve config path: %v", err)
			}

			config, err := configs.Load(path, opts.configPath != "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if config.Path == "" {
				fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" No config file at "+ui.Path.Sprint(path))
				fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("seedtool config init")+" to create one")
				return nil
			}

			fmt.Fprintln(out, "# "+config.Path)
			if err := toml.NewEncoder(out).Encode(config.Defined()); err != nil {
				return Logger.ErrorfAndReturn("Failed to encode config: %v", err)
			}

			for _, key := range config.Unknown() {
				fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" Unknown key "+ui.Highlight.Sprint(key))
			}
			return nil
		},
	}
}
