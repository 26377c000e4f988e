// Package config holds the outliner configuration and loads it from
// layered sources.
//
// Layers, lowest precedence first:
//
//  1. built-in defaults (Default)
//  2. the TOML file given by WithFile
//  3. a .env file (OUTLINER_* variables only)
//  4. OUTLINER_* process environment variables
//
// A loaded Config is validated before it is returned. Use the watcher
// subpackage to reload the file when it changes.
//
// Example file:
//
//	[editor]
//	indent_width = 3
//	prompt_trigger = "/"
//
//	[logging]
//	level = "debug"
//	file = "outliner.log"
package config
