package calllog

import (
	"strings"
	"time"

	"callstrip/internal/calltype"
)

// Features is the call feature bitmask stored with each call.
type Features int

const (
	FeatureVideo Features = 0x1
	FeatureWifi  Features = 0x8
)

func (f Features) Has(x Features) bool { return f&x != 0 }

// Call is one entry of the call log.
type Call struct {
	ID          int64         `json:"id,omitempty"`
	Number      string        `json:"number"`
	Name        string        `json:"name,omitempty"`
	Date        time.Time     `json:"date"`
	DurationSec int           `json:"durationSec,omitempty"`
	Type        calltype.Code `json:"type"`
	Features    Features      `json:"features,omitempty"`
}

// MaxGroupTypes caps the call-type icons shown for one grouped row.
const MaxGroupTypes = 3

// Row is a run of consecutive calls with the same number, newest first.
type Row struct {
	Number string          `json:"number"`
	Name   string          `json:"name,omitempty"`
	Date   time.Time       `json:"date"`
	Types  []calltype.Code `json:"types"`
	Count  int             `json:"count"`
	Video  bool            `json:"video"`
	Wifi   bool            `json:"wifi"`
	IDs    []int64         `json:"ids"`
}

// Group collapses consecutive calls (already ordered newest first) from the
// same number into rows. A row keeps the first MaxGroupTypes call types;
// Count still counts every call. Video and Wifi are taken from the newest
// call of the row.
func Group(calls []Call) []Row {
	var rows []Row
	for _, c := range calls {
		key := normalizeNumber(c.Number)
		if n := len(rows); n > 0 && normalizeNumber(rows[n-1].Number) == key {
			r := &rows[n-1]
			r.Count++
			r.IDs = append(r.IDs, c.ID)
			if len(r.Types) < MaxGroupTypes {
				r.Types = append(r.Types, c.Type)
			}
			if r.Name == "" {
				r.Name = c.Name
			}
			continue
		}
		rows = append(rows, Row{
			Number: c.Number,
			Name:   c.Name,
			Date:   c.Date,
			Types:  []calltype.Code{c.Type},
			Count:  1,
			Video:  c.Features.Has(FeatureVideo),
			Wifi:   c.Features.Has(FeatureWifi),
			IDs:    []int64{c.ID},
		})
	}
	return rows
}

// normalizeNumber drops formatting so "+1 (555) 010-0000" and
// "+15550100000" group together.
func normalizeNumber(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ', r == '-', r == '(', r == ')', r == '.':
		default:
			// Non-numeric addresses (SIP, "Unknown") compare verbatim.
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return b.String()
}
