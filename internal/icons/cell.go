package icons

import (
	"callstrip/internal/calltype"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type glyphTable struct {
	incoming, outgoing, missed, voicemail string
	video, carrierVideo, wifi, ims        string
}

var (
	unicodeGlyphs = glyphTable{
		incoming:     "↙",
		outgoing:     "↗",
		missed:       "↙",
		voicemail:    "⊙⊙",
		video:        "▶",
		carrierVideo: "▷",
		wifi:         "≋",
		ims:          "HD",
	}
	asciiGlyphs = glyphTable{
		incoming:     "<",
		outgoing:     ">",
		missed:       "!",
		voicemail:    "oo",
		video:        "[>",
		carrierVideo: "V",
		wifi:         "w",
		ims:          "HD",
	}
)

// NewCellBundle builds terminal icons: one cell row high, as wide as the
// glyph renders. Colors stay adaptive so lipgloss resolves them against the
// detected background at render time.
func NewCellBundle(st Style) (*Bundle, error) {
	if err := st.Palette.Validate(); err != nil {
		return nil, err
	}
	g := unicodeGlyphs
	if st.Glyphs == GlyphsASCII {
		g = asciiGlyphs
	}
	video := g.video
	if st.CarrierVariant {
		video = g.carrierVideo
	}
	p := st.Palette
	return New(st.Margin, st.CarrierVariant,
		cellIcon(calltype.CategoryIncoming, g.incoming, p.Incoming),
		cellIcon(calltype.CategoryOutgoing, g.outgoing, p.Outgoing),
		cellIcon(calltype.CategoryMissed, g.missed, p.Missed),
		cellIcon(calltype.CategoryVoicemail, g.voicemail, p.Secondary),
		cellIcon(calltype.CategoryVideo, video, p.Secondary),
		cellIcon(calltype.CategoryWifi, g.wifi, p.Secondary),
		cellIcon(calltype.CategoryIMS, g.ims, p.Secondary),
	)
}

func cellIcon(cat calltype.Category, glyph string, c Color) *Icon {
	fg := lipgloss.AdaptiveColor{Light: c.Pick(false), Dark: c.Pick(true)}
	return &Icon{
		Category: cat,
		Width:    xansi.StringWidth(glyph),
		Height:   1,
		Glyph:    glyph,
		Style:    lipgloss.NewStyle().Foreground(fg),
	}
}
