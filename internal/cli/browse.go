package cli

import (
	"callstrip/internal/tui"

	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the call log in the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows to load; 0 loads all")

	return cmd
}

func runBrowse(cmd *cobra.Command, app *App, limit int) error {
	res, err := app.cellBundle()
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(tui.Options{
		Store:      app.store(),
		Bundle:     res,
		Accounting: app.cfg.Accounting,
		Limit:      limit,
	})
}
