package icons

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a hex color with light and dark background variants.
type Color struct {
	Light string `json:"light,omitempty"`
	Dark  string `json:"dark,omitempty"`
}

// Pick returns the variant for the given background, falling back to the
// other variant when one is empty.
func (c Color) Pick(dark bool) string {
	if dark && c.Dark != "" {
		return c.Dark
	}
	if c.Light != "" {
		return c.Light
	}
	return c.Dark
}

// Palette holds the tints applied to the white source assets.
type Palette struct {
	Incoming  Color `json:"incoming,omitempty"`
	Outgoing  Color `json:"outgoing,omitempty"`
	Missed    Color `json:"missed,omitempty"`
	Secondary Color `json:"secondary,omitempty"`
}

// GlyphSet selects the glyph table of a cell bundle.
type GlyphSet int

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
)

// ParseGlyphSet accepts "unicode" (or "utf8", or empty) and "ascii". ok is
// false for anything else.
func ParseGlyphSet(s string) (GlyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode", "utf8":
		return GlyphsUnicode, true
	case "ascii":
		return GlyphsASCII, true
	default:
		return GlyphsUnicode, false
	}
}

// Style is the styling context a bundle is built from.
type Style struct {
	Palette Palette
	// Margin is the gap between consecutive icons, in pixels for image
	// bundles and in cells for cell bundles.
	Margin         int
	CarrierVariant bool
	DarkBackground bool
	Glyphs         GlyphSet
}

var defaultPalette = Palette{
	Incoming:  Color{Light: "#2e7d32", Dark: "#66bb6a"},
	Outgoing:  Color{Light: "#1565c0", Dark: "#64b5f6"},
	Missed:    Color{Light: "#c62828", Dark: "#ef5350"},
	Secondary: Color{Light: "#616161", Dark: "#9e9e9e"},
}

func DefaultPalette() Palette { return defaultPalette }

// DefaultStyle matches the stock dialer look: 3px between icons.
func DefaultStyle() Style {
	return Style{Palette: defaultPalette, Margin: 3}
}

// Merge overlays the non-empty colors of o onto p.
func (p Palette) Merge(o Palette) Palette {
	pick := func(base, over Color) Color {
		if over.Light != "" {
			base.Light = over.Light
		}
		if over.Dark != "" {
			base.Dark = over.Dark
		}
		return base
	}
	p.Incoming = pick(p.Incoming, o.Incoming)
	p.Outgoing = pick(p.Outgoing, o.Outgoing)
	p.Missed = pick(p.Missed, o.Missed)
	p.Secondary = pick(p.Secondary, o.Secondary)
	return p
}

// Validate checks that every palette entry parses as a hex color.
func (p Palette) Validate() error {
	entries := []struct {
		name string
		c    Color
	}{
		{"incoming", p.Incoming},
		{"outgoing", p.Outgoing},
		{"missed", p.Missed},
		{"secondary", p.Secondary},
	}
	for _, e := range entries {
		for _, hex := range []string{e.c.Light, e.c.Dark} {
			if hex == "" {
				continue
			}
			if _, err := colorful.Hex(hex); err != nil {
				return fmt.Errorf("palette %s: invalid color %q: %w", e.name, hex, err)
			}
		}
		if e.c.Light == "" && e.c.Dark == "" {
			return fmt.Errorf("palette %s: no color set", e.name)
		}
	}
	return nil
}
