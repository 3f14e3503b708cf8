// Package ordering computes the display order of messages: pinned first, then the
// unpinned remainder sorted by the selected mode.
package ordering

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/rcliao/message-board/internal/model"
)

// Order returns a new slice holding pinned messages in their input order followed by
// the unpinned messages sorted according to mode. The input is not modified.
//
// Dates compare as strings; the fixed zero-padded layout keeps that chronological.
func Order(msgs []model.Message, mode model.SortMode) []model.Message {
	pinned, unpinned := lo.FilterReject(msgs, func(m model.Message, _ int) bool {
		return m.Pinned
	})

	if less := comparator(mode); less != nil {
		slices.SortStableFunc(unpinned, less)
	}

	out := make([]model.Message, 0, len(msgs))
	out = append(out, pinned...)
	return append(out, unpinned...)
}

func comparator(mode model.SortMode) func(a, b model.Message) int {
	switch mode {
	case model.SortDateAsc:
		return func(a, b model.Message) int { return cmp.Compare(a.Timestamp, b.Timestamp) }
	case model.SortDateDesc:
		return func(a, b model.Message) int { return cmp.Compare(b.Timestamp, a.Timestamp) }
	case model.SortNameAsc:
		return func(a, b model.Message) int { return cmp.Compare(a.Text, b.Text) }
	case model.SortNameDesc:
		return func(a, b model.Message) int { return cmp.Compare(b.Text, a.Text) }
	}
	return nil
}
