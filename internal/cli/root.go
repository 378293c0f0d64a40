package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ddstop/ddstop/internal/errors"
)

// globals holds the persistent flags shared by every command.
var globals GlobalFlags

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ddstop",
	Short: "Live dashboard of DDS writers, readers, topics and abnormalities",
	Long: `ddstop shows the discovered entities of a DDS domain in four tabbed
tables and redraws them on a fixed cadence.

The feed is either a seeded synthetic network or a scenario file that
replays a recorded timeline.

Keyboard shortcuts:
  q / Ctrl+C       Quit
  up / down        Move the selection
  PgUp / PgDn      Move a page
  Home / End       First / last row
  Tab / Shift+Tab  Next / previous tab
  y                Copy the selected row
  ?                Show help

Examples:
  ddstop
  ddstop --seed 42 --interval 500ms
  ddstop --scenario testdata/bridge.yaml`,
	Args: cobra.NoArgs,
	// Errors are printed by Execute in the structured layout.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd, &globals)
		if err != nil {
			return err
		}
		return runDashboard(cmd.Context(), cfg)
	},
}

func init() {
	AddGlobalFlags(rootCmd, &globals)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
