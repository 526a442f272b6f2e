package cli

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"callstrip/internal/calltype"
	"callstrip/internal/canvas"
	"callstrip/internal/icons"
	"callstrip/internal/strip"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
)

// stripInput is the mutation sequence shared by `strip` and `png`.
type stripInput struct {
	codes      []calltype.Code
	video      bool
	imsOrVideo []calltype.Code
}

func parseStripInput(args []string, video bool, imsOrVideo []string) (stripInput, error) {
	in := stripInput{video: video}
	for _, a := range args {
		cs, err := calltype.ParseList(a)
		if err != nil {
			return stripInput{}, err
		}
		in.codes = append(in.codes, cs...)
	}
	for _, a := range imsOrVideo {
		cs, err := calltype.ParseList(a)
		if err != nil {
			return stripInput{}, fmt.Errorf("--ims-or-video: %w", err)
		}
		in.imsOrVideo = append(in.imsOrVideo, cs...)
	}
	return in, nil
}

// apply binds in to s: Add per code, then either the IMS-or-video calls or
// SetShowVideo.
func (in stripInput) apply(s *strip.Strip) {
	for _, c := range in.codes {
		s.Add(c)
	}
	if len(in.imsOrVideo) > 0 {
		for _, c := range in.imsOrVideo {
			s.AddImsOrVideoIcon(c, in.video)
		}
		return
	}
	if in.video {
		s.SetShowVideo(true)
	}
}

type entryView struct {
	Code int    `json:"code"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	IMS  bool   `json:"ims,omitempty"`
}

type opView struct {
	Icon   string `json:"icon"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type stripView struct {
	Entries        []entryView `json:"entries"`
	ShowVideo      bool        `json:"showVideo"`
	CarrierVariant bool        `json:"carrierVariant"`
	Accounting     string      `json:"accounting"`
	Units          string      `json:"units"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	Extent         int         `json:"extent"`
	Plan           []opView    `json:"plan"`
	Preview        string      `json:"preview"`

	styledPreview string
}

func newStripView(s *strip.Strip, res *icons.Bundle, units string) stripView {
	v := stripView{
		Entries:        []entryView{},
		ShowVideo:      s.IsVideoShown(),
		CarrierVariant: res.CarrierVariant(),
		Accounting:     s.Accounting().String(),
		Units:          units,
		Width:          s.MeasuredWidth(),
		Height:         s.MeasuredHeight(),
		Plan:           []opView{},
	}
	for _, c := range s.Entries() {
		_, ims := calltype.IMS(c)
		v.Entries = append(v.Entries, entryView{
			Code: int(c),
			Name: c.String(),
			Icon: calltype.Base(c).String(),
			IMS:  ims,
		})
	}
	for _, op := range s.Plan() {
		r := op.Bounds()
		v.Extent = max(v.Extent, r.Max.X)
		v.Plan = append(v.Plan, opView{
			Icon:   op.Category.String(),
			X:      op.X,
			Y:      op.Y,
			Width:  r.Dx(),
			Height: r.Dy(),
		})
	}
	return v
}

func (v stripView) Text() string {
	var b strings.Builder
	preview := v.styledPreview
	if preview == "" {
		preview = v.Preview
	}
	fmt.Fprintf(&b, "%s\n", preview)
	fmt.Fprintf(&b, "size: %dx%d %s (%s, extent %d)\n", v.Width, v.Height, v.Units, v.Accounting, v.Extent)
	fmt.Fprintf(&b, "video: %t  carrier: %t\n", v.ShowVideo, v.CarrierVariant)
	for _, op := range v.Plan {
		fmt.Fprintf(&b, "  %-9s x=%-4d %dx%d\n", op.Icon, op.X, op.Width, op.Height)
	}
	return strings.TrimRight(b.String(), "\n")
}

// preview renders in through the cell bundle, sized to the plan extent.
func (app *App) preview(in stripInput) (plain, styled string, err error) {
	res, err := app.cellBundle()
	if err != nil {
		return "", "", err
	}
	s := app.newStrip(res)
	in.apply(s)
	w := s.MeasuredWidth()
	for _, op := range s.Plan() {
		w = max(w, op.Bounds().Max.X)
	}
	c := canvas.NewCells(w, 1)
	s.Render(c)
	return c.Plain(), c.String(), nil
}

func newStripCmd(app *App) *cobra.Command {
	var video bool
	var imsOrVideo []string
	var cells bool

	cmd := &cobra.Command{
		Use:   "strip <code>...",
		Short: "Lay out a strip and print its measured size and draw plan",
		Long: strings.TrimSpace(`
Codes are call-type numbers (1 incoming, 2 outgoing, 3 missed, 4 voicemail,
5-7 the IMS variants) or names, separated by spaces or commas. Unknown codes
are shown as missed.

Sizes are in pixels of the image bundle, or in terminal cells with --cells.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseStripInput(args, video, imsOrVideo)
			if err != nil {
				return writeErr(cmd, err)
			}

			units := "px"
			var res *icons.Bundle
			if cells {
				units = "cells"
				res, err = app.cellBundle()
			} else {
				res, err = app.imageBundle()
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			s := app.newStrip(res)
			in.apply(s)
			view := newStripView(s, res, units)
			view.Preview, view.styledPreview, err = app.preview(in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope{Data: view})
		},
	}

	cmd.Flags().BoolVar(&video, "video", false, "Show the video icon")
	cmd.Flags().StringSliceVar(&imsOrVideo, "ims-or-video", nil, "Call AddImsOrVideoIcon with this code (repeatable)")
	cmd.Flags().BoolVar(&cells, "cells", false, "Measure with the terminal glyph bundle")

	return cmd
}

func newPNGCmd(app *App) *cobra.Command {
	var video bool
	var imsOrVideo []string
	var out string
	var bg string

	cmd := &cobra.Command{
		Use:   "png <code>... --out <file.png>",
		Short: "Render a strip with the image bundle and write a PNG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return writeErr(cmd, errors.New("missing --out"))
			}
			in, err := parseStripInput(args, video, imsOrVideo)
			if err != nil {
				return writeErr(cmd, err)
			}
			var fill color.Color
			if bg != "" {
				c, err := colorful.Hex(bg)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--bg: %w", err))
				}
				r, g, b := c.RGB255()
				fill = color.NRGBA{R: r, G: g, B: b, A: 0xff}
			}

			res, err := app.imageBundle()
			if err != nil {
				return writeErr(cmd, err)
			}
			s := app.newStrip(res)
			in.apply(s)
			view := newStripView(s, res, "px")

			// The plan extent can exceed the measured width (compat
			// accounting) so the canvas covers both.
			w := max(view.Width, view.Extent)
			h := view.Height
			for _, op := range view.Plan {
				h = max(h, op.Y+op.Height)
			}
			c := canvas.NewImage(w, h, fill)
			s.Render(c)

			if dir := filepath.Dir(out); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return writeErr(cmd, err)
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.EncodePNG(f); err != nil {
				_ = f.Close()
				return writeErr(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   out,
				"width":  w,
				"height": h,
				"strip":  view,
			}})
		},
	}

	cmd.Flags().BoolVar(&video, "video", false, "Show the video icon")
	cmd.Flags().StringSliceVar(&imsOrVideo, "ims-or-video", nil, "Call AddImsOrVideoIcon with this code (repeatable)")
	cmd.Flags().StringVar(&out, "out", "", "Output PNG path")
	cmd.Flags().StringVar(&bg, "bg", "", "Background color as hex (default: transparent)")

	return cmd
}
