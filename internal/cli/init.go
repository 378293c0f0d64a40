package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ddstop/ddstop/internal/config"
	"github.com/ddstop/ddstop/internal/errors"
	"github.com/ddstop/ddstop/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .ddstop.yaml into
	Overwrite      bool   // Update an existing config without asking
	NonInteractive bool   // Skip prompts, use defaults and flags

	Mode         string
	Scenario     string
	Seed         int64
	Participants int
	TickInterval time.Duration
	PageSize     int
}

// initAnswers holds the form fields as text, the way huh edits them.
type initAnswers struct {
	mode         string
	scenario     string
	seed         string
	participants string
	tickInterval string
	pageSize     string
}

const configHeader = `# ddstop configuration
# Run 'ddstop' for the dashboard or 'ddstop dump' for a plain-text snapshot.

`

// Init creates .ddstop.yaml, or updates the keys it manages in an existing
// file while keeping the rest of the file and its comments.
func Init(w io.Writer, opts InitOptions) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	_, statErr := os.Stat(configPath)
	exists := statErr == nil
	if exists && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to update it")
		}

		var update bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Update it?", config.ConfigFileName)).
					Value(&update),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to update")
		}
		if !update {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	applyInitOptions(cfg, opts)

	if !opts.NonInteractive {
		answers := answersFrom(cfg)
		if err := initForm(&answers).Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
		if err := answers.apply(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if exists {
		if err := config.SetValues(configPath, initValues(cfg)); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Failed to update config file: %s", configPath),
				"Check the file is valid YAML")
		}
		fmt.Fprintf(w, "%s Updated %s\n", ui.SymbolSuccess, configPath)
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	if err := os.WriteFile(configPath, []byte(configHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  ddstop        - Open the dashboard")
	fmt.Fprintln(w, "  ddstop dump   - Print the tables once")
	return nil
}

// applyInitOptions copies the non-zero options onto cfg.
func applyInitOptions(cfg *config.Config, opts InitOptions) {
	if opts.Scenario != "" {
		cfg.Feed.Mode = config.ModeScenario
		cfg.Feed.Scenario = opts.Scenario
	}
	if opts.Mode != "" {
		cfg.Feed.Mode = opts.Mode
	}
	if opts.Seed != 0 {
		cfg.Feed.Seed = opts.Seed
	}
	if opts.Participants != 0 {
		cfg.Feed.Participants = opts.Participants
	}
	if opts.TickInterval != 0 {
		cfg.TickInterval = opts.TickInterval
	}
	if opts.PageSize != 0 {
		cfg.PageSize = opts.PageSize
	}
}

// initValues lists the keys init manages, in config file form.
func initValues(cfg *config.Config) map[string]string {
	values := map[string]string{
		"version":           strconv.Itoa(cfg.Version),
		"tick_interval":     cfg.TickInterval.String(),
		"page_size":         strconv.Itoa(cfg.PageSize),
		"feed.mode":         cfg.Feed.Mode,
		"feed.seed":         strconv.FormatInt(cfg.Feed.Seed, 10),
		"feed.participants": strconv.Itoa(cfg.Feed.Participants),
	}
	if cfg.Feed.Scenario != "" {
		values["feed.scenario"] = cfg.Feed.Scenario
	}
	return values
}

func answersFrom(cfg *config.Config) initAnswers {
	return initAnswers{
		mode:         cfg.Feed.Mode,
		scenario:     cfg.Feed.Scenario,
		seed:         strconv.FormatInt(cfg.Feed.Seed, 10),
		participants: strconv.Itoa(cfg.Feed.Participants),
		tickInterval: cfg.TickInterval.String(),
		pageSize:     strconv.Itoa(cfg.PageSize),
	}
}

func initForm(a *initAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Feed").
				Description("Where the dashboard gets its data").
				Options(huh.NewOptions(config.Modes...)...).
				Value(&a.mode),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Scenario file").
				Description("YAML timeline to replay").
				Placeholder("scenarios/demo.yaml").
				Value(&a.scenario).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("scenario file is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return a.mode != config.ModeScenario }),
		huh.NewGroup(
			huh.NewInput().
				Title("Seed").
				Description("The same seed replays the same network").
				Value(&a.seed).
				Validate(validateInt(false)),
			huh.NewInput().
				Title("Participants").
				Value(&a.participants).
				Validate(validateInt(true)),
		).WithHideFunc(func() bool { return a.mode != config.ModeSynthetic }),
		huh.NewGroup(
			huh.NewInput().
				Title("Redraw interval").
				Placeholder("250ms").
				Value(&a.tickInterval).
				Validate(func(s string) error {
					_, err := time.ParseDuration(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Page size").
				Description("Rows moved by PgUp/PgDn").
				Value(&a.pageSize).
				Validate(validateInt(true)),
		),
	)
}

func validateInt(positive bool) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if positive && n <= 0 {
			return fmt.Errorf("must be greater than zero")
		}
		return nil
	}
}

// apply parses the answers onto cfg.
func (a initAnswers) apply(cfg *config.Config) error {
	cfg.Feed.Mode = a.mode
	cfg.Feed.Scenario = strings.TrimSpace(a.scenario)

	var err error
	if cfg.Feed.Seed, err = strconv.ParseInt(strings.TrimSpace(a.seed), 10, 64); err != nil {
		return invalidAnswer("seed", a.seed)
	}
	if cfg.Feed.Participants, err = strconv.Atoi(strings.TrimSpace(a.participants)); err != nil {
		return invalidAnswer("participants", a.participants)
	}
	if cfg.TickInterval, err = time.ParseDuration(strings.TrimSpace(a.tickInterval)); err != nil {
		return invalidAnswer("redraw interval", a.tickInterval)
	}
	if cfg.PageSize, err = strconv.Atoi(strings.TrimSpace(a.pageSize)); err != nil {
		return invalidAnswer("page size", a.pageSize)
	}
	return nil
}

func invalidAnswer(field, value string) error {
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' isn't a valid %s", value, field),
		"Run 'ddstop init' again")
}
