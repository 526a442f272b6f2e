package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"callstrip/internal/calltype"
	"callstrip/internal/canvas"
	"callstrip/internal/icons"
	"callstrip/internal/strip"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// callRowDelegate renders one call-log row per line:
//
//	<icon strip> <name or number> (count)            <wifi> <when>
//
// A single strip is recycled across every row it renders.
type callRowDelegate struct {
	res   *icons.Bundle
	strip *strip.Strip
	now   func() time.Time

	normal   lipgloss.Style
	selected lipgloss.Style
	missed   lipgloss.Style
}

func newCallRowDelegate(res *icons.Bundle, acct strip.Accounting) *callRowDelegate {
	return &callRowDelegate{
		res:    res,
		strip:  strip.New(res, strip.WithAccounting(acct)),
		now:    time.Now,
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		missed: lipgloss.NewStyle().Foreground(colorMissedName),
	}
}

func (d *callRowDelegate) Height() int  { return 1 }
func (d *callRowDelegate) Spacing() int { return 0 }
func (d *callRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d *callRowDelegate) setAccounting(a strip.Accounting) {
	d.strip = strip.New(d.res, strip.WithAccounting(a))
}

// stripCells renders the strip bound to it. The canvas is sized by the draw
// plan so the trailing IMS icons are never clipped, even when the measured
// width (compat accounting) is narrower.
func (d *callRowDelegate) stripCells(it rowItem) (string, int) {
	bindRow(d.strip, it.row)
	w := d.strip.MeasuredWidth()
	for _, op := range d.strip.Plan() {
		w = max(w, op.Bounds().Max.X)
	}
	c := canvas.NewCells(w, 1)
	d.strip.Render(c)
	return c.String(), w
}

func (d *callRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(rowItem)
	if !ok || contentW < 8 {
		fmt.Fprint(w, "")
		return
	}

	glyphs, glyphsW := d.stripCells(it)

	right := it.when(d.now())
	if it.row.Wifi {
		wifi := d.res.Icon(calltype.CategoryWifi)
		right = wifi.Style.Render(wifi.Glyph) + " " + right
	}
	rightW := xansi.StringWidth(right)

	title := it.Title()
	if c := it.countLabel(); c != "" {
		title += " " + c
	}
	if it.missed() && index != m.Index() {
		title = d.missed.Render(title)
	}

	left := glyphs + " " + title
	leftW := glyphsW + 1 + xansi.StringWidth(title)

	avail := contentW - rightW - 1
	if avail < 0 {
		avail = 0
	}
	if leftW > avail {
		left = xansi.Truncate(left, avail, "…")
		leftW = xansi.StringWidth(left)
	}
	line := left + strings.Repeat(" ", max(contentW-leftW-rightW, 1)) + styleMuted().Render(right)
	if xansi.StringWidth(line) > contentW {
		line = xansi.Truncate(line, contentW, "")
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}
	fmt.Fprint(w, style.Render(line))
}
