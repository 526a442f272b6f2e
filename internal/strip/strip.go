// Package strip lays out and paints the row of call-type icons shown next to
// a call-log entry.
//
// A Strip is bound once per row: Add each call segment, optionally flag the
// video or IMS icon, read the measured size for layout and Render. Hosts that
// recycle rows call Reset before rebinding.
package strip

import (
	"errors"
	"fmt"
	"image"

	"callstrip/internal/calltype"
	"callstrip/internal/icons"
)

// ErrIndexOutOfRange is wrapped by EntryAt for indexes outside the entries.
var ErrIndexOutOfRange = errors.New("entry index out of range")

// Accounting selects how the measured size is maintained.
type Accounting int

const (
	// Compat accumulates the measured size on every mutation, one
	// contribution per call. Repeated SetShowVideo(true) calls add the video
	// icon again, and the video/IMS paths add no margin.
	Compat Accounting = iota
	// Exact recomputes the measured size from the full state after every
	// mutation, as the extent of the draw plan. Only what Render paints is
	// measured, so calls are not additive: AddImsOrVideoIcon with an IMS
	// code and showVideo false adds no width, since the IMS icon is only
	// painted for IMS entries, and repeated SetShowVideo(true) calls
	// measure the video icon once. Clear always leaves 0x0.
	Exact
)

// ParseAccounting accepts "compat", "exact" or "" (compat).
func ParseAccounting(s string) (Accounting, error) {
	switch s {
	case "", "compat":
		return Compat, nil
	case "exact":
		return Exact, nil
	default:
		return Compat, fmt.Errorf("unknown accounting mode: %s (want compat|exact)", s)
	}
}

func (a Accounting) String() string {
	if a == Exact {
		return "exact"
	}
	return "compat"
}

// Surface receives the icons of a render pass.
type Surface interface {
	DrawIcon(icon *icons.Icon, at image.Point)
}

// DrawOp is one icon placement of a draw plan.
type DrawOp struct {
	Category calltype.Category
	Icon     *icons.Icon
	X, Y     int
}

// Bounds is the area the op paints.
func (op DrawOp) Bounds() image.Rectangle {
	return image.Rect(op.X, op.Y, op.X+op.Icon.Width, op.Y+op.Icon.Height)
}

// Option configures a Strip in New.
type Option func(*Strip)

// WithAccounting overrides the default Compat accounting.
func WithAccounting(a Accounting) Option {
	return func(s *Strip) { s.accounting = a }
}

// WithInvalidate registers the host's repaint request. It runs once after
// every mutation that can change what Render paints: Add, Clear, a change of
// the video flag, and the sized paths of AddImsOrVideoIcon.
func WithInvalidate(fn func()) Option {
	return func(s *Strip) { s.invalidate = fn }
}

// Strip holds the call types of one row and its measured size.
type Strip struct {
	res        *icons.Bundle
	accounting Accounting
	invalidate func()

	entries   []calltype.Code
	showVideo bool
	width     int
	height    int
}

// New returns an empty strip drawing from res. The carrier-variant setting
// is taken from the bundle.
func New(res *icons.Bundle, opts ...Option) *Strip {
	s := &Strip{
		res:     res,
		entries: make([]calltype.Code, 0, 3),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Clear drops every entry and zeroes the measured size in either
// accounting mode. The video flag is left as is; use Reset when recycling a
// row.
func (s *Strip) Clear() {
	s.entries = s.entries[:0]
	s.width = 0
	s.height = 0
	s.requestPaint()
}

// Reset returns the strip to the state of a freshly constructed one.
func (s *Strip) Reset() {
	s.showVideo = false
	s.Clear()
}

// Add appends a call segment. Its base icon plus one margin is added to the width.
func (s *Strip) Add(code calltype.Code) {
	s.entries = append(s.entries, code)
	ic := s.res.Icon(calltype.Base(code))
	s.grow(ic.Width+s.res.Margin(), ic.Height)
	s.requestPaint()
}

// AddImsOrVideoIcon sets the video flag and sizes the trailing annotation:
// the video icon when showVideo is set, otherwise the IMS icon if code is an
// IMS variant. Neither path adds a margin. Entries are not touched.
func (s *Strip) AddImsOrVideoIcon(code calltype.Code, showVideo bool) {
	changed := s.showVideo != showVideo
	s.showVideo = showVideo
	if showVideo {
		ic := s.res.Icon(calltype.CategoryVideo)
		s.grow(ic.Width, ic.Height)
		s.requestPaint()
		return
	}
	cat, ok := calltype.IMS(code)
	if !ok {
		s.relayout()
		if changed {
			s.requestPaint()
		}
		return
	}
	ic := s.res.Icon(cat)
	s.grow(ic.Width, ic.Height)
	s.requestPaint()
}

// SetShowVideo sets whether the video icon is drawn. With the carrier
// variant the flag is stored but the size is left alone.
func (s *Strip) SetShowVideo(showVideo bool) {
	changed := s.showVideo != showVideo
	s.showVideo = showVideo
	if !s.res.CarrierVariant() && showVideo {
		ic := s.res.Icon(calltype.CategoryVideo)
		s.grow(ic.Width, ic.Height)
		s.requestPaint()
		return
	}
	s.relayout()
	if changed {
		s.requestPaint()
	}
}

// IsVideoShown reports the video flag.
func (s *Strip) IsVideoShown() bool { return s.showVideo }

// EntryCount is the number of call segments added since the last Clear.
func (s *Strip) EntryCount() int { return len(s.entries) }

// EntryAt returns the i-th call type in insertion order, or an error
// wrapping ErrIndexOutOfRange.
func (s *Strip) EntryAt(i int) (calltype.Code, error) {
	if i < 0 || i >= len(s.entries) {
		return 0, fmt.Errorf("%w: %d (count %d)", ErrIndexOutOfRange, i, len(s.entries))
	}
	return s.entries[i], nil
}

// Entries returns a copy of the call types in insertion order.
func (s *Strip) Entries() []calltype.Code {
	return append([]calltype.Code(nil), s.entries...)
}

// MeasuredWidth and MeasuredHeight are the size maintained by the
// accounting mode. In Compat mode the draw plan can extend past them.
func (s *Strip) MeasuredWidth() int  { return s.width }
func (s *Strip) MeasuredHeight() int { return s.height }

// Size is the measured box as a point.
func (s *Strip) Size() image.Point { return image.Pt(s.width, s.height) }

func (s *Strip) Accounting() Accounting { return s.accounting }

// Plan returns the icons Render paints, in paint order:
//
//  1. the base icon of every entry, each followed by a margin;
//  2. the video icon, followed by a margin, when the flag is set;
//  3. the IMS icon of every IMS entry, each advancing by its bare width.
//
// IMS icons form a trailing group and do not sit next to the entry they
// annotate.
func (s *Strip) Plan() []DrawOp {
	ops := make([]DrawOp, 0, len(s.entries)*2+1)
	margin := s.res.Margin()
	left := 0
	for _, code := range s.entries {
		cat := calltype.Base(code)
		ic := s.res.Icon(cat)
		ops = append(ops, DrawOp{Category: cat, Icon: ic, X: left})
		left += ic.Width + margin
	}
	if s.showVideo {
		ic := s.res.Icon(calltype.CategoryVideo)
		ops = append(ops, DrawOp{Category: calltype.CategoryVideo, Icon: ic, X: left})
		left += ic.Width + margin
	}
	for _, code := range s.entries {
		cat, ok := calltype.IMS(code)
		if !ok {
			continue
		}
		ic := s.res.Icon(cat)
		ops = append(ops, DrawOp{Category: cat, Icon: ic, X: left})
		left += ic.Width
	}
	return ops
}

// Render paints the plan onto dst.
func (s *Strip) Render(dst Surface) {
	for _, op := range s.Plan() {
		dst.DrawIcon(op.Icon, image.Pt(op.X, op.Y))
	}
}

func (s *Strip) grow(dw, h int) {
	if s.accounting == Exact {
		s.relayout()
		return
	}
	s.width += dw
	s.height = max(s.height, h)
}

// relayout recomputes the measured size from scratch in Exact mode.
func (s *Strip) relayout() {
	if s.accounting != Exact {
		return
	}
	s.width, s.height = 0, 0
	for _, op := range s.Plan() {
		r := op.Bounds()
		s.width = max(s.width, r.Max.X)
		s.height = max(s.height, r.Max.Y)
	}
}

func (s *Strip) requestPaint() {
	if s.invalidate != nil {
		s.invalidate()
	}
}
