package icons

import (
	"fmt"
	"image"

	"callstrip/internal/calltype"

	"github.com/charmbracelet/lipgloss"
)

// Icon is one pre-styled call-type symbol. Image icons carry pixels; cell
// icons carry a glyph and a terminal style. Width and Height are intrinsic
// and never change once the icon is built.
type Icon struct {
	Category calltype.Category
	Width    int
	Height   int

	Image image.Image

	Glyph string
	Style lipgloss.Style
}

// NewImageIcon wraps img, taking the intrinsic size from its bounds.
func NewImageIcon(cat calltype.Category, img image.Image) *Icon {
	b := img.Bounds()
	return &Icon{Category: cat, Width: b.Dx(), Height: b.Dy(), Image: img}
}

// Bundle is the read-only set of icons shared by every strip of a process.
type Bundle struct {
	icons   [7]*Icon
	margin  int
	carrier bool
}

// New builds a bundle from one icon per category. It fails when a category
// is missing or given twice.
func New(margin int, carrierVariant bool, icons ...*Icon) (*Bundle, error) {
	if margin < 0 {
		return nil, fmt.Errorf("icon margin must be >= 0, got %d", margin)
	}
	b := &Bundle{margin: margin, carrier: carrierVariant}
	for _, ic := range icons {
		if ic == nil {
			return nil, fmt.Errorf("nil icon")
		}
		idx := int(ic.Category)
		if idx < 0 || idx >= len(b.icons) {
			return nil, fmt.Errorf("icon has invalid category %v", ic.Category)
		}
		if b.icons[idx] != nil {
			return nil, fmt.Errorf("duplicate icon for %v", ic.Category)
		}
		b.icons[idx] = ic
	}
	for _, cat := range calltype.Categories() {
		if b.icons[cat] == nil {
			return nil, fmt.Errorf("missing icon for %v", cat)
		}
	}
	return b, nil
}

// Icon returns the icon for cat. It panics on a category outside the enum,
// which only a programming error can produce.
func (b *Bundle) Icon(cat calltype.Category) *Icon {
	return b.icons[cat]
}

// Margin is the gap after each base and video icon.
func (b *Bundle) Margin() int { return b.margin }

// CarrierVariant reports whether the carrier-specific video assets are in use.
// Strips consult it to suppress video sizing in SetShowVideo.
func (b *Bundle) CarrierVariant() bool { return b.carrier }
