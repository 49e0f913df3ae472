package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/tui"
	"github.com/idilsaglam/tasks/internal/ui"
)

// App carries root flags and the per-invocation session.
type App struct {
	ConfigPath  string
	Theme       string
	LogFile     string
	LogLevel    string
	NoColor     bool
	NoAltScreen bool

	cfg  config.Config
	logs *logging.Session
}

// exitError carries a non-zero exit code out of a cobra command.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		ui.Fail(stderr, err.Error())
		return 1
	}
	return 0
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "tasks",
		Short:         "A small to-do list for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  tasks

  # Replay gestures from a script and print the result
  tasks run script.txt --yes

  # Show the key map
  tasks keys
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), tui.Options{
				Logger:    app.logs.Logger,
				AltScreen: app.cfg.AltScreen,
				NoColor:   app.cfg.NoColor,
			})
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.logs.Close()
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.ConfigPath, "config", "", "path to a TOML config file")
	f.StringVar(&app.Theme, "theme", "", "color theme: classic, neon or mono")
	f.StringVar(&app.LogFile, "log-file", "", "write logs to this file")
	f.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&app.NoColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&app.NoAltScreen, "inline", false, "render inline instead of the alternate screen")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newKeysCmd(app))
	return cmd
}

// setup merges config with flags, applies the theme and opens the logger.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = a.Theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.LogFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.NoColor
	}
	if flags.Changed("inline") {
		cfg.AltScreen = !a.NoAltScreen
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	ui.SetColorForcing(false, cfg.NoColor)
	ui.SetTheme(cfg.Theme)

	logs, err := logging.Open(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	a.logs = logs
	a.logs.Debug("config loaded", "theme", cfg.Theme, "command", cmd.CommandPath())
	return nil
}

func newRunCmd(app *App) *cobra.Command {
	var (
		assumeYes bool
		format    string
	)
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Apply a script of gestures to a new list and print it",
		Long: strings.TrimSpace(`
Reads one command per line from file (or stdin when file is omitted or "-"):

  add <title...>            add a task
  done <index>              toggle done for the task at a 1-based index
  rm <index>                remove the task (asks for confirmation)
  rename <index> <title...> rename the task
  ls                        print the list

Blank lines and lines starting with # are ignored. Removal prompts are
answered from stdin when the script comes from a file; with --yes every
removal is accepted. When the script itself is read from stdin and --yes is
not given, removals are declined.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != FormatPanel && format != FormatJSON {
				return fmt.Errorf("unknown format %q (want panel or json)", format)
			}
			opt := Options{
				Format:    format,
				AssumeYes: assumeYes,
				Out:       cmd.OutOrStdout(),
				Err:       cmd.ErrOrStderr(),
				Logger:    app.logs.Logger,
			}

			var script io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				script = f
				opt.Answers = cmd.InOrStdin()
			}

			if code := RunScript(script, opt); code != 0 {
				return exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "accept every removal prompt")
	cmd.Flags().StringVar(&format, "format", FormatPanel, "output format: panel or json")
	return cmd
}

func newKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show the interactive key map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style := "dark"
			if app.cfg.NoColor || ui.Current().Name == "mono" {
				style = "notty"
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				return fmt.Errorf("markdown renderer: %w", err)
			}
			out, err := r.Render(tui.KeyHelpMarkdown())
			if err != nil {
				return fmt.Errorf("render keys: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
