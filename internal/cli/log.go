package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"callstrip/internal/calllog"
	"callstrip/internal/calltype"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage the call log",
	}
	cmd.AddCommand(newLogAddCmd(app))
	cmd.AddCommand(newLogListCmd(app))
	cmd.AddCommand(newLogImportCmd(app))
	cmd.AddCommand(newLogClearCmd(app))
	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var number string
	var name string
	var typ string
	var video bool
	var wifi bool
	var duration int
	var at string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a call",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := calltype.Parse(typ)
			if err != nil {
				return writeErr(cmd, err)
			}
			c := calllog.Call{
				Number:      number,
				Name:        name,
				DurationSec: duration,
				Type:        code,
			}
			if strings.TrimSpace(at) != "" {
				ts, err := time.Parse(time.RFC3339, strings.TrimSpace(at))
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--at: %w", err))
				}
				c.Date = ts
			}
			if video {
				c.Features |= calllog.FeatureVideo
			}
			if wifi {
				c.Features |= calllog.FeatureWifi
			}

			id, err := app.store().Add(cmd.Context(), c)
			if err != nil {
				return writeErr(cmd, err)
			}
			c.ID = id
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Phone number")
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&typ, "type", "incoming", "Call type (code or name)")
	cmd.Flags().BoolVar(&video, "video", false, "Video call")
	cmd.Flags().BoolVar(&wifi, "wifi", false, "Call over wifi")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in seconds")
	cmd.Flags().StringVar(&at, "at", "", "Call time (RFC3339; default: now)")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

type callList []calllog.Call

func (l callList) Text() string {
	if len(l) == 0 {
		return "(no calls)"
	}
	now := time.Now()
	var b strings.Builder
	for _, c := range l {
		who := c.Number
		if c.Name != "" {
			who = c.Name + " " + c.Number
		}
		fmt.Fprintf(&b, "%-5d %-12s %-28s %s\n", c.ID, c.Type, who, humanize.RelTime(c.Date, now, "ago", "from now"))
	}
	return strings.TrimRight(b.String(), "\n")
}

type rowList []calllog.Row

func (l rowList) Text() string {
	if len(l) == 0 {
		return "(no calls)"
	}
	now := time.Now()
	var b strings.Builder
	for _, r := range l {
		names := make([]string, 0, len(r.Types))
		for _, c := range r.Types {
			names = append(names, c.String())
		}
		who := r.Number
		if r.Name != "" {
			who = r.Name
		}
		var extras []string
		if r.Count > 1 {
			extras = append(extras, fmt.Sprintf("(%d)", r.Count))
		}
		if r.Video {
			extras = append(extras, "video")
		}
		if r.Wifi {
			extras = append(extras, "wifi")
		}
		fmt.Fprintf(&b, "%-28s %-36s %s", who, strings.Join(names, ","), humanize.RelTime(r.Date, now, "ago", "from now"))
		if len(extras) > 0 {
			fmt.Fprintf(&b, " %s", strings.Join(extras, " "))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func newLogListCmd(app *App) *cobra.Command {
	var limit int
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calls, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store()
			if grouped {
				rows, err := st.Rows(cmd.Context(), limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{Data: append(rowList{}, rows...)})
			}
			calls, err := st.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: append(callList{}, calls...)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of calls (or rows with --grouped); 0 lists all")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "Group consecutive calls from the same number into rows")

	return cmd
}

func newLogImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import calls from a JSON array",
		Long: strings.TrimSpace(`
Reads a JSON array of calls:

  [{"number": "+15550100", "name": "Ada", "date": "2026-10-14T09:30:00Z",
    "type": "missed-ims", "video": false, "wifi": true}]

"type" may be a code or a name. "-" reads from stdin.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			if args[0] == "-" {
				r = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			n, err := app.store().Import(cmd.Context(), r)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": n}})
		},
	}
	return cmd
}

func newLogClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every call",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errConfirmRequired("clear the call log"))
			}
			n, err := app.store().Clear(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": n}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")

	return cmd
}
