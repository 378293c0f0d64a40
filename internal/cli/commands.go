package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ddstop/ddstop/internal/errors"
)

// Command-specific flags
var (
	dumpSettleFlag     time.Duration
	dumpCheckFlag      bool
	initForce          bool
	initNonInteractive bool
	initModeFlag       string
	initParticipants   int
)

// dumpCmd prints the tables once without taking over the terminal
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every table once as plain text",
	Long: `Run the feed for a short settle period, then print the Writers,
Reader, Topics and Abnormalities tables once.

Use this when stdout is not a terminal, for example in CI logs or pipes.

Examples:
  ddstop dump
  ddstop dump --settle 5s --scenario testdata/bridge.yaml
  ddstop dump --check   # exit 2 if any abnormality was recorded`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd, &globals)
		if err != nil {
			return err
		}
		return Dump(cmd.Context(), cmd.OutOrStdout(), cfg, DumpOptions{
			Settle: dumpSettleFlag,
			Check:  dumpCheckFlag,
		})
	},
}

// initCmd creates a new .ddstop.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ddstop.yaml configuration",
	Long: `Create a .ddstop.yaml file in the current directory.

Prompts for the feed and dashboard settings. An existing file is updated in
place, keeping keys and comments init doesn't manage.

Scenario files look like:

  loop: true
  steps:
    - at: 0s
      add_topic: {name: chatter, type: std_msgs::String, reliability: reliable}
    - at: 1s
      add_writer: {guid: "010f...|00000102", topic: chatter, type: std_msgs::String}
    - at: 3s
      abnormality: {writer: "010f...|00000102", topic: chatter, desc: liveliness lost}

Examples:
  ddstop init
  ddstop init --non-interactive --seed 7
  ddstop init --force --scenario scenarios/demo.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := InitOptions{
			Dir:            ".",
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Mode:           initModeFlag,
			Scenario:       globals.Scenario,
			Seed:           globals.Seed,
			Participants:   initParticipants,
			PageSize:       globals.PageSize,
		}
		if globals.Interval != "" {
			d, err := ParseInterval(globals.Interval)
			if err != nil {
				return err
			}
			opts.TickInterval = d
		}
		return Init(cmd.OutOrStdout(), opts)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ddstop.

Examples:
  # Bash
  ddstop completion bash > /etc/bash_completion.d/ddstop

  # Zsh
  ddstop completion zsh > "${fpath[1]}/_ddstop"

  # Fish
  ddstop completion fish > ~/.config/fish/completions/ddstop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dump command flags
	dumpCmd.Flags().DurationVar(&dumpSettleFlag, "settle", 2*time.Second, "how long to run the feed before printing")
	dumpCmd.Flags().BoolVar(&dumpCheckFlag, "check", false, "exit with code 2 if any abnormality was recorded")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "update an existing config without asking")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use defaults and flags")
	initCmd.Flags().StringVar(&initModeFlag, "mode", "", "feed mode (synthetic or scenario)")
	initCmd.Flags().IntVar(&initParticipants, "participants", 0, "number of synthetic participants")

	// Register all commands
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
