package canvas

import (
	"image"
	"strings"

	"callstrip/internal/icons"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	glyph string
	style lipgloss.Style
	head  bool
	// cont marks the trailing columns of a wide glyph.
	cont bool
}

// CellCanvas is a grid of terminal cells that cell icons are placed on.
type CellCanvas struct {
	w, h  int
	cells [][]cell
}

func NewCells(w, h int) *CellCanvas {
	w, h = max(w, 0), max(h, 0)
	rows := make([][]cell, h)
	for y := range rows {
		rows[y] = make([]cell, w)
	}
	return &CellCanvas{w: w, h: h, cells: rows}
}

// DrawIcon places the icon glyph with its top-left cell at at. Glyphs that
// do not fit inside the grid are dropped; icons without a glyph are skipped.
func (c *CellCanvas) DrawIcon(icon *icons.Icon, at image.Point) {
	if icon == nil || icon.Glyph == "" || icon.Width <= 0 {
		return
	}
	if at.Y < 0 || at.Y >= c.h || at.X < 0 || at.X+icon.Width > c.w {
		return
	}
	row := c.cells[at.Y]
	for x := at.X; x < at.X+icon.Width; x++ {
		c.erase(row, x)
	}
	row[at.X] = cell{glyph: icon.Glyph, style: icon.Style, head: true}
	for x := at.X + 1; x < at.X+icon.Width; x++ {
		row[x] = cell{cont: true}
	}
}

// erase blanks the glyph covering column x, including its other columns.
func (c *CellCanvas) erase(row []cell, x int) {
	if !row[x].head && !row[x].cont {
		return
	}
	start := x
	for start > 0 && row[start].cont {
		start--
	}
	row[start] = cell{}
	for i := start + 1; i < len(row) && row[i].cont; i++ {
		row[i] = cell{}
	}
}

// String renders the grid with each glyph in its icon style.
func (c *CellCanvas) String() string { return c.render(true) }

// Plain renders the glyphs without styling.
func (c *CellCanvas) Plain() string { return c.render(false) }

func (c *CellCanvas) render(styled bool) string {
	lines := make([]string, 0, c.h)
	for _, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			switch {
			case cl.cont:
			case cl.head && styled:
				b.WriteString(cl.style.Render(cl.glyph))
			case cl.head:
				b.WriteString(cl.glyph)
			default:
				b.WriteByte(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
