// Package calltype classifies call-log call types into the icons that
// represent them.
package calltype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code is a raw call-type tag as stored by the call log.
type Code int

// Platform call-log values plus the carrier IMS variants.
const (
	Incoming    Code = 1
	Outgoing    Code = 2
	Missed      Code = 3
	Voicemail   Code = 4
	IncomingIMS Code = 5
	OutgoingIMS Code = 6
	MissedIMS   Code = 7
)

// Category identifies one icon of a resource bundle.
type Category int

const (
	CategoryIncoming Category = iota
	CategoryOutgoing
	CategoryMissed
	CategoryVoicemail
	CategoryVideo
	CategoryIMS
	CategoryWifi
)

// ErrUnknownCode is returned by Parse for names it does not recognize.
var ErrUnknownCode = errors.New("unknown call type")

var codeNames = map[Code]string{
	Incoming:    "incoming",
	Outgoing:    "outgoing",
	Missed:      "missed",
	Voicemail:   "voicemail",
	IncomingIMS: "incoming-ims",
	OutgoingIMS: "outgoing-ims",
	MissedIMS:   "missed-ims",
}

var categoryNames = [...]string{
	CategoryIncoming:  "incoming",
	CategoryOutgoing:  "outgoing",
	CategoryMissed:    "missed",
	CategoryVoicemail: "voicemail",
	CategoryVideo:     "video",
	CategoryIMS:       "ims",
	CategoryWifi:      "wifi",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return strconv.Itoa(int(c))
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Codes returns the recognized codes in numeric order.
func Codes() []Code {
	return []Code{Incoming, Outgoing, Missed, Voicemail, IncomingIMS, OutgoingIMS, MissedIMS}
}

// Categories returns every icon category in bundle order.
func Categories() []Category {
	return []Category{
		CategoryIncoming,
		CategoryOutgoing,
		CategoryMissed,
		CategoryVoicemail,
		CategoryVideo,
		CategoryIMS,
		CategoryWifi,
	}
}

// Known reports whether c is one of the recognized codes.
func Known(c Code) bool {
	_, ok := codeNames[c]
	return ok
}

// Base maps a code to its call-direction icon. IMS variants share the icon
// of their plain counterpart.
//
// Third-party call log providers write vendor codes (e.g. to tell rejected
// from missed calls apart); those are shown as missed rather than rejected.
func Base(c Code) Category {
	switch c {
	case Incoming, IncomingIMS:
		return CategoryIncoming
	case Outgoing, OutgoingIMS:
		return CategoryOutgoing
	case Missed, MissedIMS:
		return CategoryMissed
	case Voicemail:
		return CategoryVoicemail
	default:
		return CategoryMissed
	}
}

// IMS maps the IMS variants to the IMS icon. ok is false for every other code.
func IMS(c Code) (cat Category, ok bool) {
	switch c {
	case IncomingIMS, OutgoingIMS, MissedIMS:
		return CategoryIMS, true
	default:
		return 0, false
	}
}

// Parse accepts a code name ("missed", "Missed_IMS", "outgoing ims") or an
// integer. Integers outside the known set are accepted as-is: classification
// decides how they are shown.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownCode)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Code(n), nil
	}
	key := strings.ToLower(s)
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	for c, name := range codeNames {
		if name == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, s)
}

// ParseList parses codes separated by commas and/or whitespace.
func ParseList(s string) ([]Code, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]Code, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
