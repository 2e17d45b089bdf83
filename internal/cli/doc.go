// Package cli implements the rabo command-line interface.
//
// # Commands
//
//   - import: Store Rabobank CSV statement exports in the configured backend
//   - summary: Print totals, owned accounts and the largest expenses and incomes
//   - flow: Build the money-flow graph and write it as JSON, DOT or SVG
//   - render: Render a previously exported flow.json to DOT or SVG
//   - cache: Clear the cache or print its location
//
// summary and flow read the given CSV files into a throwaway in-memory store,
// or the configured store when no files are given.
//
// # Configuration
//
// Settings come from $XDG_CONFIG_HOME/rabo/config.toml, or the file passed
// with --config. See package config for the keys.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli
