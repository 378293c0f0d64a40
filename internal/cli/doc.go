// Package cli implements the ddstop command-line interface.
//
// # Command Structure
//
// The root command "ddstop" opens the dashboard. Subcommands:
//
//	ddstop dump        - Print every table once as plain text
//	ddstop init        - Create or update .ddstop.yaml
//	ddstop version     - Print version information
//	ddstop completion  - Generate shell completion scripts
//
// # Settings
//
// Every command that runs the feed resolves its settings the same way:
// the config file found by config.Find, then any global flag the user set
// (--interval, --page-size, --scenario, --seed, --log-file, --no-color),
// then config.Validate.
//
// # Lifecycle
//
// The dashboard and the feed share one state.Store. The feed runs in its
// own goroutine under a context that is cancelled once the dashboard
// returns; runDashboard waits for the feed before exiting so no goroutine
// outlives the command.
package cli
