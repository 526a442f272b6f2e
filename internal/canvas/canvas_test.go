package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"callstrip/internal/calltype"
	"callstrip/internal/icons"
	"callstrip/internal/strip"

	"github.com/charmbracelet/lipgloss"
)

func solidIcon(cat calltype.Category, w, h int, c color.NRGBA) *icons.Icon {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return icons.NewImageIcon(cat, img)
}

func TestImageCanvas_DrawsAtOffset(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	ic := solidIcon(calltype.CategoryMissed, 2, 2, red)

	c := NewImage(6, 2, nil)
	c.DrawIcon(ic, image.Pt(3, 0))

	img := c.Image()
	if got := img.RGBAAt(3, 1); got.R != 0xff || got.A != 0xff {
		t.Fatalf("expected red at (3,1); got %+v", got)
	}
	if got := img.RGBAAt(1, 1); got.A != 0 {
		t.Fatalf("expected transparent at (1,1); got %+v", got)
	}
	if got := img.RGBAAt(5, 0); got.A != 0 {
		t.Fatalf("expected icon clipped to its intrinsic width; got %+v at (5,0)", got)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 6, 2) {
		t.Fatalf("unexpected bounds %v", decoded.Bounds())
	}
}

func TestImageCanvas_Background(t *testing.T) {
	c := NewImage(2, 1, color.White)
	if got := c.Image().RGBAAt(1, 0); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Fatalf("expected white background; got %+v", got)
	}
	c.DrawIcon(&icons.Icon{Width: 1, Height: 1}, image.Pt(0, 0))
}

func TestImageCanvas_RendersStripWithRealBundle(t *testing.T) {
	res, err := icons.NewImageBundle(icons.DefaultStyle())
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	s := strip.New(res)
	s.Add(calltype.Incoming)
	s.Add(calltype.MissedIMS)
	s.SetShowVideo(true)

	// The IMS pass paints past the compat width; size the canvas by the plan.
	ops := s.Plan()
	c := NewImage(ops[len(ops)-1].Bounds().Max.X, s.MeasuredHeight(), nil)
	s.Render(c)

	opaque := 0
	img := c.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatalf("expected some painted pixels")
	}
}

func cellIcon(cat calltype.Category, glyph string, w int) *icons.Icon {
	return &icons.Icon{Category: cat, Glyph: glyph, Width: w, Height: 1, Style: lipgloss.NewStyle()}
}

func TestCellCanvas_PlacesGlyphs(t *testing.T) {
	c := NewCells(7, 1)
	c.DrawIcon(cellIcon(calltype.CategoryIncoming, "<", 1), image.Pt(0, 0))
	c.DrawIcon(cellIcon(calltype.CategoryVoicemail, "oo", 2), image.Pt(2, 0))
	c.DrawIcon(cellIcon(calltype.CategoryIMS, "HD", 2), image.Pt(5, 0))
	if got, want := c.Plain(), "< oo HD"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCellCanvas_DropsOutOfBoundsAndOverwrites(t *testing.T) {
	c := NewCells(4, 1)
	c.DrawIcon(cellIcon(calltype.CategoryIMS, "HD", 2), image.Pt(3, 0))
	c.DrawIcon(cellIcon(calltype.CategoryIMS, "HD", 2), image.Pt(0, 1))
	if got := c.Plain(); got != "    " {
		t.Fatalf("expected nothing drawn; got %q", got)
	}

	c.DrawIcon(cellIcon(calltype.CategoryVoicemail, "oo", 2), image.Pt(0, 0))
	c.DrawIcon(cellIcon(calltype.CategoryMissed, "!", 1), image.Pt(1, 0))
	if got, want := c.Plain(), " !  "; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCellCanvas_RendersStrip(t *testing.T) {
	st := icons.DefaultStyle()
	st.Margin = 1
	st.Glyphs = icons.GlyphsASCII
	res, err := icons.NewCellBundle(st)
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	s := strip.New(res, strip.WithAccounting(strip.Exact))
	s.Add(calltype.Incoming)
	s.Add(calltype.Outgoing)
	s.Add(calltype.MissedIMS)
	s.SetShowVideo(true)

	c := NewCells(s.MeasuredWidth(), s.MeasuredHeight())
	s.Render(c)
	if got, want := c.Plain(), "< > ! [> HD"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
