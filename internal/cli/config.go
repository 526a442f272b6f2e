package cli

import (
	"strings"

	"callstrip/internal/config"
	"callstrip/internal/icons"

	"github.com/spf13/cobra"
)

type configView struct {
	Path           string        `json:"path"`
	Dir            string        `json:"dir"`
	DB             string        `json:"db"`
	CarrierVariant bool          `json:"carrierVariant"`
	Accounting     string        `json:"accounting"`
	IconMargin     int           `json:"iconMargin"`
	CellMargin     int           `json:"cellMargin"`
	Glyphs         string        `json:"glyphs"`
	Palette        icons.Palette `json:"palette"`
	File           *config.File  `json:"file"`
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the config file",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.LoadFile(app.cfg.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			glyphs := "unicode"
			if app.cfg.Glyphs == icons.GlyphsASCII {
				glyphs = "ascii"
			}
			return writeOut(cmd, app, map[string]any{"data": configView{
				Path:           config.FilePath(app.cfg.Dir),
				Dir:            app.cfg.Dir,
				DB:             app.cfg.DB,
				CarrierVariant: app.cfg.CarrierVariant,
				Accounting:     app.cfg.Accounting.String(),
				IconMargin:     app.cfg.IconMargin,
				CellMargin:     app.cfg.CellMargin,
				Glyphs:         glyphs,
				Palette:        app.cfg.Palette,
				File:           f,
			}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a config file value (omit the value to unset it)",
		Long: strings.TrimSpace(`
Keys: ` + strings.Join(config.Keys(), ", ") + `, and
palette.<incoming|outgoing|missed|secondary>.<light|dark> for hex colors.
`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			f, err := config.LoadFile(app.cfg.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := f.Set(args[0], value); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.SaveFile(app.cfg.Dir, f); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":  config.FilePath(app.cfg.Dir),
				"key":   args[0],
				"value": value,
				"file":  f,
			}})
		},
	}
}
