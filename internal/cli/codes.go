package cli

import (
	"fmt"
	"strings"

	"callstrip/internal/calltype"

	"github.com/spf13/cobra"
)

type codeRow struct {
	Code int    `json:"code"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	IMS  string `json:"ims,omitempty"`
}

type codeTable []codeRow

func (t codeTable) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-13s %-10s %s\n", "CODE", "NAME", "ICON", "IMS")
	for _, r := range t {
		fmt.Fprintf(&b, "%-4d %-13s %-10s %s\n", r.Code, r.Name, r.Icon, r.IMS)
	}
	return strings.TrimRight(b.String(), "\n")
}

func classify(c calltype.Code) codeRow {
	r := codeRow{Code: int(c), Name: c.String(), Icon: calltype.Base(c).String()}
	if cat, ok := calltype.IMS(c); ok {
		r.IMS = cat.String()
	}
	return r
}

func newCodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes [code]...",
		Short: "Show how call-type codes map to icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := calltype.Codes()
			if len(args) > 0 {
				codes = nil
				for _, a := range args {
					cs, err := calltype.ParseList(a)
					if err != nil {
						return writeErr(cmd, err)
					}
					codes = append(codes, cs...)
				}
			}
			out := make(codeTable, 0, len(codes))
			for _, c := range codes {
				out = append(out, classify(c))
			}
			return writeOut(cmd, app, envelope{Data: out})
		},
	}
	return cmd
}
