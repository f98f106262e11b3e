package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Config holds default values for the root command flags. Keys map one to
// one onto long flag names with dashes replaced by underscores.
type Config struct {
	Count           int      `toml:"count"`
	In              string   `toml:"in"`
	Out             string   `toml:"out"`
	Low             int      `toml:"low"`
	High            int      `toml:"high"`
	MaxFragmentLen  int      `toml:"max_fragment_len"`
	AdditionalParts int      `toml:"additional_parts"`
	SSKRFormat      string   `toml:"sskr_format"`
	GroupThreshold  int      `toml:"group_threshold"`
	Groups          []string `toml:"groups"`

	// Path is the file the values were read from. Empty if none was found.
	Path string `toml:"-"`

	defined []string
	unknown []string
}

// Keys lists every recognised config key.
var Keys = []string{
	"count", "in", "out", "low", "high", "max_fragment_len",
	"additional_parts", "sskr_format", "group_threshold", "groups",
}

// Default returns the built-in defaults, matching the flag defaults.
func Default() *Config {
	return &Config{
		Count:           16,
		In:              "random",
		Out:             "hex",
		Low:             0,
		High:            9,
		MaxFragmentLen:  500,
		AdditionalParts: 0,
		SSKRFormat:      "envelope",
		GroupThreshold:  1,
		Groups:          []string{"1-of-1"},
		defined:         slices.Clone(Keys),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/seedtool/config.toml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(configDir, "seedtool", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields an empty
// config unless required is set.
func Load(path string, required bool) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return config, nil
	}

	md, err := LoadTOML(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	config.Path = path
	for _, key := range Keys {
		if md.IsDefined(key) {
			config.defined = append(config.defined, key)
		}
	}
	for _, key := range md.Undecoded() {
		config.unknown = append(config.unknown, key.String())
	}

	return config, nil
}

// Save writes config to path, creating parent directories.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// IsSet reports whether key was present in the loaded file.
func (c *Config) IsSet(key string) bool {
	return slices.Contains(c.defined, key)
}

// Unknown lists keys in the file that seedtool does not recognise.
func (c *Config) Unknown() []string {
	return c.unknown
}

// Defined returns the typed value of every key present in the file.
func (c *Config) Defined() map[string]any {
	all := map[string]any{
		"count":            c.Count,
		"in":               c.In,
		"out":              c.Out,
		"low":              c.Low,
		"high":             c.High,
		"max_fragment_len": c.MaxFragmentLen,
		"additional_parts": c.AdditionalParts,
		"sskr_format":      c.SSKRFormat,
		"group_threshold":  c.GroupThreshold,
		"groups":           c.Groups,
	}

	defined := make(map[string]any, len(c.defined))
	for _, key := range c.defined {
		defined[key] = all[key]
	}
	return defined
}

// Values returns the flag values for every key present in the file, as
// strings suitable for pflag's Set. Groups are returned one entry per
// group.
func (c *Config) Values() map[string][]string {
	values := make(map[string][]string)
	for key, v := range c.Defined() {
		if groups, ok := v.([]string); ok {
			values[key] = slices.Clone(groups)
			continue
		}
		values[key] = []string{fmt.Sprint(v)}
	}
	return values
}
