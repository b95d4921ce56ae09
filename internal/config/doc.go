// Package config provides configuration management for the mint-backgrounds
// mirror.
//
// This package handles:
//   - Default configuration values
//   - Loading and saving settings from JSON or TOML files
//   - Binding settings to command line flags and environment variables
//   - Logger construction from --log-level / --log-json
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Mirrors http://packages.linuxmint.com/pool/main/m
//	// Skips archives below 13 MiB
//	// 16 download workers, 4 extraction workers
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.toml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Flags
//
// Settings.Flags binds every scalar option to a flag; Override applies only
// the flags the user actually set on top of a loaded file:
//
//	var flagged config.Settings = *config.DefaultSettings()
//	cmd := &cli.Command{Flags: flagged.Flags()}
//	// ... after parsing:
//	settings.Override(cmd.IsSet, &flagged)
package config
