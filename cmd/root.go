package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/seedtool/internal/configs"
	"github.com/PolarWolf314/seedtool/internal/formats"
	logger "github.com/PolarWolf314/seedtool/internal/logging"
	"github.com/PolarWolf314/seedtool/internal/sskr"
	"github.com/PolarWolf314/seedtool/internal/ui"
	"github.com/PolarWolf314/seedtool/internal/workflows"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// rootOptions holds the flag values of one root command instance.
type rootOptions struct {
	in              formats.Key
	out             formats.Key
	count           int
	low             int
	high            int
	name            string
	note            string
	date            *time.Time
	maxFragmentLen  int
	additionalParts int
	groups          []sskr.GroupSpec
	groupThreshold  int
	sskrFormat      formats.SSKRFormat
	deterministic   string
	configPath      string
}

func formatNames(filter func(formats.Key) error) string {
	var names []string
	for _, k := range formats.Keys() {
		if filter(k) == nil {
			names = append(names, k.String())
		}
	}
	return strings.Join(names, ", ")
}

// NewRootCmd builds the seedtool root command with fresh flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "seedtool [flags] [INPUT...]",
		Short: "Generate and convert cryptographic seeds between encodings",
		Long: `seedtool generates a seed or reads one in any supported format and
writes it out in another.

INPUT is read from the arguments, or from stdin when no arguments are given.
Several arguments are joined with newlines, so SSKR shares or multipart URs
can be passed one per argument.

Input formats:  ` + formatNames(inputFormat) + `
Output formats: ` + formatNames(outputFormat) + `

bits, cards, dice, base6, base10 and ints outputs lose information, so they
can only be produced from random input.

Defaults for most flags can be set in $XDG_CONFIG_HOME/seedtool/config.toml.

Examples:
  # 16 random bytes as hex
  seedtool

  # Reproducible BIP-39 mnemonic
  seedtool --deterministic TEST --out bip39

  # Seed envelope with metadata
  seedtool --out envelope --name "Dark Purple Aqua Love" --date now

  # Split into two groups, both required
  seedtool --out sskr --group-threshold 2 --groups 2-of-3 --groups 3-of-5

  # Recover from shares
  seedtool --in sskr < shares.txt`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Writer:  cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing seedtool with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.count, "count", "c", 16, "number of bytes to generate or derive (1-64)")
	flags.VarP(newFormatValue(&opts.in, formats.Random, inputFormat), "in", "i", "input format")
	flags.VarP(newFormatValue(&opts.out, formats.Hex, outputFormat), "out", "o", "output format")
	flags.IntVar(&opts.low, "low", 0, "lowest value for ints output (0-254)")
	flags.IntVar(&opts.high, "high", 9, "highest value for ints output (1-255)")
	flags.StringVar(&opts.name, "name", "", "seed name, replaces any name from the input")
	flags.StringVar(&opts.note, "note", "", "seed note, replaces any note from the input")
	flags.Var(&dateValue{date: &opts.date, now: time.Now}, "date", `creation date: "now", YYYY-MM-DD or RFC 3339`)
	flags.IntVar(&opts.maxFragmentLen, "max-fragment-len", 500, "maximum fragment length for multipart output")
	flags.IntVar(&opts.additionalParts, "additional-parts", 0, "extra fountain-coded parts for multipart output")
	flags.VarP(newGroupsValue(&opts.groups, []sskr.GroupSpec{{Threshold: 1, Count: 1}}), "groups", "g", "SSKR or SLIP-39 group as M-of-N, repeatable")
	flags.IntVarP(&opts.groupThreshold, "group-threshold", "t", 1, "number of groups required to recover (1-16)")
	flags.VarP(&sskrFormatValue{format: &opts.sskrFormat}, "sskr-format", "s", "SSKR share encoding: envelope, btw, btwm, btwu or ur")
	flags.StringVarP(&opts.deterministic, "deterministic", "d", "", "use a reproducible random source seeded by this string (insecure)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/seedtool/config.toml)")

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}
	return err
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Error.Sprint("✗")+" "+err.Error())
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Info.Sprint("→")+" "+hint)
	}
}

func runTransform(cmd *cobra.Command, args []string, opts *rootOptions) error {
	if err := applyConfig(cmd, opts.configPath); err != nil {
		return err
	}

	var input *string
	if len(args) > 0 {
		joined := strings.Join(args, "\n")
		input = &joined
	}

	transformOpts := workflows.TransformOptions{
		In:              opts.in,
		Out:             opts.out,
		Input:           workflows.NewInputReader(input, cmd.InOrStdin()),
		Count:           opts.count,
		Low:             opts.low,
		High:            opts.high,
		Date:            opts.date,
		MaxFragmentLen:  opts.maxFragmentLen,
		AdditionalParts: opts.additionalParts,
		SSKRSpec:        sskr.Spec{GroupThreshold: opts.groupThreshold, Groups: opts.groups},
		SSKRFormat:      opts.sskrFormat,
		Logger:          Logger,
	}
	if cmd.Flags().Changed("name") {
		transformOpts.Name = &opts.name
	}
	if cmd.Flags().Changed("note") {
		transformOpts.Note = &opts.note
	}
	if cmd.Flags().Changed("deterministic") {
		transformOpts.Deterministic = &opts.deterministic
	}

	Logger.Debugf("Flags: in=%s, out=%s, count=%d, groups=%s", opts.in, opts.out, opts.count, transformOpts.SSKRSpec)

	result, err := workflows.Transform(cmd.Context(), transformOpts)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	return nil
}

// applyConfig fills every flag not given on the command line from the
// config file.
func applyConfig(cmd *cobra.Command, path string) error {
	required := path != ""
	if path == "" {
		defaultPath, err := configs.DefaultPath()
		if err != nil {
			Logger.Debugf("No default config path: %v", err)
			return nil
		}
		path = defaultPath
	}

	config, err := configs.Load(path, required)
	if err != nil {
		return err
	}
	if config.Path == "" {
		Logger.Debugf("No config file at %s", path)
		return nil
	}
	Logger.Infof("Using config %s", config.Path)

	for _, key := range config.Unknown() {
		Logger.Warnf("Ignoring unknown config key %q in %s", key, config.Path)
	}

	for key, values := range config.Values() {
		flag := cmd.Flags().Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil || flag.Changed {
			continue
		}
		for _, v := range values {
			if err := flag.Value.Set(v); err != nil {
				return fmt.Errorf("config %s: %s: %w", config.Path, key, err)
			}
		}
		Logger.Debugf("Config sets %s=%s", key, flag.Value.String())
	}
	return nil
}
