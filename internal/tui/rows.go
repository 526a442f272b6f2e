package tui

import (
	"fmt"
	"strings"
	"time"

	"callstrip/internal/calllog"
	"callstrip/internal/calltype"
	"callstrip/internal/strip"

	"github.com/dustin/go-humanize"
)

type rowItem struct {
	row calllog.Row
}

func (it rowItem) FilterValue() string {
	return strings.TrimSpace(it.row.Name + " " + it.row.Number)
}

func (it rowItem) Title() string {
	if it.row.Name != "" {
		return it.row.Name
	}
	return it.row.Number
}

// missed reports whether the newest call of the row was missed, which the
// row highlights.
func (it rowItem) missed() bool {
	return len(it.row.Types) > 0 && calltype.Base(it.row.Types[0]) == calltype.CategoryMissed
}

func (it rowItem) when(now time.Time) string {
	if it.row.Date.IsZero() {
		return ""
	}
	return humanize.RelTime(it.row.Date, now, "ago", "from now")
}

func (it rowItem) countLabel() string {
	if it.row.Count <= 1 {
		return ""
	}
	return fmt.Sprintf("(%d)", it.row.Count)
}

// bindRow rebinds a recycled strip to row: Reset, one Add per call segment,
// then the video flag. IMS icons come from the segments themselves.
func bindRow(s *strip.Strip, row calllog.Row) {
	s.Reset()
	for _, c := range row.Types {
		s.Add(c)
	}
	s.SetShowVideo(row.Video)
}

func rowItems(rows []calllog.Row) []rowItem {
	out := make([]rowItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowItem{row: r})
	}
	return out
}
