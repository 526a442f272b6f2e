package icons

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"callstrip/internal/calltype"
)

func fixedIcons(w, h int) []*Icon {
	var out []*Icon
	for _, cat := range calltype.Categories() {
		out = append(out, &Icon{Category: cat, Width: w, Height: h})
	}
	return out
}

func TestNew_RequiresEveryCategory(t *testing.T) {
	all := fixedIcons(4, 4)
	if _, err := New(2, false, all...); err != nil {
		t.Fatalf("expected full set to build: %v", err)
	}
	if _, err := New(2, false, all[:6]...); err == nil || !strings.Contains(err.Error(), "missing icon") {
		t.Fatalf("expected missing icon error; got %v", err)
	}
	dup := append(fixedIcons(4, 4), &Icon{Category: calltype.CategoryIMS})
	if _, err := New(2, false, dup...); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error; got %v", err)
	}
	if _, err := New(-1, false, all...); err == nil {
		t.Fatalf("expected negative margin to be rejected")
	}
}

func TestImageBundle_Defaults(t *testing.T) {
	b, err := NewImageBundle(DefaultStyle())
	if err != nil {
		t.Fatalf("NewImageBundle: %v", err)
	}
	if b.Margin() != 3 || b.CarrierVariant() {
		t.Fatalf("unexpected margin/carrier: %d %v", b.Margin(), b.CarrierVariant())
	}
	missed := b.Icon(calltype.CategoryMissed)
	video := b.Icon(calltype.CategoryVideo)
	if video.Height != missed.Height {
		t.Fatalf("expected video scaled to arrow height %d; got %d", missed.Height, video.Height)
	}
	// videocam is square, so the scaled icon is too.
	if video.Width != video.Height {
		t.Fatalf("expected aspect ratio kept; got %dx%d", video.Width, video.Height)
	}
	for _, cat := range calltype.Categories() {
		ic := b.Icon(cat)
		if ic.Image == nil || ic.Width == 0 || ic.Height == 0 {
			t.Fatalf("icon %v not built: %+v", cat, ic)
		}
		if ic.Image.Bounds() != image.Rect(0, 0, ic.Width, ic.Height) {
			t.Fatalf("icon %v bounds %v do not match intrinsic size", cat, ic.Image.Bounds())
		}
	}
}

func TestImageBundle_CarrierVideoAsset(t *testing.T) {
	st := DefaultStyle()
	st.CarrierVariant = true
	b, err := NewImageBundle(st)
	if err != nil {
		t.Fatalf("NewImageBundle: %v", err)
	}
	if !b.CarrierVariant() {
		t.Fatalf("expected carrier variant flag to be kept")
	}
	if got := b.Icon(calltype.CategoryVideo).Width; got != 22 {
		t.Fatalf("expected unscaled volte video width 22; got %d", got)
	}
}

func TestImageBundle_TintedArrowsDiffer(t *testing.T) {
	b, err := NewImageBundle(DefaultStyle())
	if err != nil {
		t.Fatalf("NewImageBundle: %v", err)
	}
	in := b.Icon(calltype.CategoryIncoming).Image.(*image.NRGBA)
	miss := b.Icon(calltype.CategoryMissed).Image.(*image.NRGBA)
	same := true
	for i := range in.Pix {
		if in.Pix[i] != miss.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected incoming and missed arrows to have different tints")
	}
}

func TestMultiplyAndRotate(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []uint8{255, 255, 255, 255, 0, 0, 0, 0})

	got := multiply(src, colorNRGBA(0x80, 0x00, 0xff))
	if got.Pix[0] != 0x80 || got.Pix[1] != 0 || got.Pix[2] != 0xff || got.Pix[3] != 0xff {
		t.Fatalf("unexpected tinted pixel: %v", got.Pix[:4])
	}
	if got.Pix[7] != 0 {
		t.Fatalf("expected transparent pixel to stay transparent")
	}

	rot := rotate180(src)
	if rot.Pix[4] != 255 || rot.Pix[0] != 0 {
		t.Fatalf("expected pixels swapped by rotation: %v", rot.Pix)
	}
}

func TestPalette_Validate(t *testing.T) {
	p := DefaultPalette()
	if err := p.Validate(); err != nil {
		t.Fatalf("default palette invalid: %v", err)
	}
	bad := p.Merge(Palette{Missed: Color{Dark: "not-a-color"}})
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid hex to fail validation")
	}
	if _, err := NewImageBundle(Style{Palette: bad}); err == nil {
		t.Fatalf("expected bundle construction to fail on bad palette")
	}
}

func TestPalette_MergeKeepsUnsetColors(t *testing.T) {
	p := DefaultPalette().Merge(Palette{Incoming: Color{Light: "#000000"}})
	if p.Incoming.Light != "#000000" {
		t.Fatalf("expected override, got %q", p.Incoming.Light)
	}
	if p.Incoming.Dark != DefaultPalette().Incoming.Dark {
		t.Fatalf("expected dark variant kept, got %q", p.Incoming.Dark)
	}
}

func TestColor_Pick(t *testing.T) {
	c := Color{Light: "#111111", Dark: "#eeeeee"}
	if c.Pick(true) != "#eeeeee" || c.Pick(false) != "#111111" {
		t.Fatalf("unexpected pick")
	}
	if (Color{Light: "#111111"}).Pick(true) != "#111111" {
		t.Fatalf("expected fallback to light")
	}
	if (Color{Dark: "#eeeeee"}).Pick(false) != "#eeeeee" {
		t.Fatalf("expected fallback to dark")
	}
}

func TestCellBundle_ASCII(t *testing.T) {
	st := DefaultStyle()
	st.Margin = 1
	st.Glyphs = GlyphsASCII
	b, err := NewCellBundle(st)
	if err != nil {
		t.Fatalf("NewCellBundle: %v", err)
	}
	cases := map[calltype.Category]int{
		calltype.CategoryIncoming:  1,
		calltype.CategoryVoicemail: 2,
		calltype.CategoryVideo:     2,
		calltype.CategoryIMS:       2,
	}
	for cat, w := range cases {
		ic := b.Icon(cat)
		if ic.Width != w || ic.Height != 1 {
			t.Fatalf("%v: expected %dx1; got %dx%d", cat, w, ic.Width, ic.Height)
		}
	}

	st.CarrierVariant = true
	cb, err := NewCellBundle(st)
	if err != nil {
		t.Fatalf("NewCellBundle: %v", err)
	}
	if cb.Icon(calltype.CategoryVideo).Glyph != "V" {
		t.Fatalf("expected carrier video glyph; got %q", cb.Icon(calltype.CategoryVideo).Glyph)
	}
}

func TestParseGlyphSet(t *testing.T) {
	if gs, ok := ParseGlyphSet("ASCII"); !ok || gs != GlyphsASCII {
		t.Fatalf("expected ascii")
	}
	if gs, ok := ParseGlyphSet(""); !ok || gs != GlyphsUnicode {
		t.Fatalf("expected unicode default")
	}
	if _, ok := ParseGlyphSet("bogus"); ok {
		t.Fatalf("expected bogus to be rejected")
	}
}

func colorNRGBA(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
