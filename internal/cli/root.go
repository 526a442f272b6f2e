package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"callstrip/internal/calllog"
	"callstrip/internal/config"
	"callstrip/internal/format"
	"callstrip/internal/icons"
	"callstrip/internal/logger"
	"callstrip/internal/strip"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type App struct {
	DB         string
	Format     string
	Pretty     bool
	Carrier    bool
	Accounting string
	LogLevel   string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "callstrip",
		Short:        "Call-type icon strips for call-log rows (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the call log
  callstrip

  # Lay out a strip and print its draw plan
  callstrip strip incoming missed-ims --video

  # Shortcut for: callstrip strip 1 3 5
  callstrip 1,3,5

  # Render a strip to a PNG
  callstrip png 1 2 3 --out strip.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => call-log browser.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBrowse(cmd, app, 0)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.DB, "db", "", "Path to the call-log database (default: $CALLSTRIP_CONFIG_DIR/calls.sqlite)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|text; default: text on a terminal, json otherwise)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Carrier, "carrier", false, "Use the carrier icon variant (video icon without size accounting)")
	cmd.PersistentFlags().StringVar(&app.Accounting, "accounting", "", "Width accounting (compat|exact)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")

	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newStripCmd(app))
	cmd.AddCommand(newPNGCmd(app))
	cmd.AddCommand(newCodesCmd(app))
	cmd.AddCommand(newLogCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// resolve loads the config once and layers the flags that were set on top.
func (app *App) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = app.DB
	}
	if flags.Changed("carrier") {
		cfg.CarrierVariant = app.Carrier
	}
	if flags.Changed("accounting") {
		a, err := strip.ParseAccounting(app.Accounting)
		if err != nil {
			return writeErr(cmd, err)
		}
		cfg.Accounting = a
	}
	if flags.Changed("log-level") {
		l, err := logger.ParseLevel(app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		cfg.LogLevel = l
	}
	if !flags.Changed("format") {
		app.Format = cfg.Format
	}
	if app.Format == "" {
		app.Format = "json"
		if isTerminal(cmd.OutOrStdout()) {
			app.Format = "text"
		}
	}
	app.cfg = cfg

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetGlobalLevel(cfg.LogLevel)
	logger.SetColored(isTerminal(cmd.ErrOrStderr()))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (app *App) store() calllog.Store {
	return calllog.Store{Path: app.cfg.DB}
}

func (app *App) cellBundle() (*icons.Bundle, error) {
	return icons.NewCellBundle(app.cfg.CellStyle())
}

func (app *App) imageBundle() (*icons.Bundle, error) {
	return icons.NewImageBundle(app.cfg.ImageStyle(lipgloss.HasDarkBackground()))
}

func (app *App) newStrip(res *icons.Bundle) *strip.Strip {
	return strip.New(res, strip.WithAccounting(app.cfg.Accounting))
}

// envelope wraps command output as {"data": ...}. Text renders the payload
// when it has a text form.
type envelope struct {
	Data any `json:"data"`
}

func (e envelope) Text() string {
	if t, ok := e.Data.(format.Texter); ok {
		return t.Text()
	}
	return ""
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	if e, ok := v.(envelope); ok {
		if _, texter := e.Data.(format.Texter); !texter {
			v = map[string]any{"data": e.Data}
		}
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
