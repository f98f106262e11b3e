// Package configs loads the optional seedtool config file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/seedtool/config.toml
// unless --config points elsewhere. Every key supplies a default for the
// root command flag of the same name:
//
//	count = 32
//	out = "sskr"
//	sskr_format = "btwm"
//	group_threshold = 2
//	groups = ["2-of-3", "3-of-5"]
//
// Flags given on the command line always win over file values. A missing
// default file is not an error; keys that seedtool does not recognise are
// reported through Config.Unknown so the caller can warn about them.
package configs
