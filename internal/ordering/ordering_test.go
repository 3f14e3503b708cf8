package ordering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rcliao/message-board/internal/model"
)

func texts(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestOrderByNameAsc(t *testing.T) {
	in := []model.Message{
		{Text: "b", Timestamp: "2024-01-01 10:00:00"},
		{Text: "a", Timestamp: "2024-01-02 10:00:00"},
	}
	got := Order(in, model.SortNameAsc)
	require.Equal(t, []string{"a", "b"}, texts(got))
	require.Equal(t, "b", in[0].Text, "input must not be reordered")
}

func TestPinnedFirstForEveryMode(t *testing.T) {
	in := []model.Message{
		{Text: "x", Timestamp: "t1", Pinned: true},
		{Text: "y", Timestamp: "t2"},
		{Text: "z", Timestamp: "t3", Pinned: true},
	}
	for _, mode := range model.SortModes {
		require.Equal(t, []string{"x", "z", "y"}, texts(Order(in, mode)), mode.String())
	}
}

func TestPinnedAreNeverSorted(t *testing.T) {
	in := []model.Message{
		{Text: "zeta", Timestamp: "2024-03-01 00:00:00", Pinned: true},
		{Text: "alpha", Timestamp: "2024-01-01 00:00:00", Pinned: true},
		{Text: "mid", Timestamp: "2024-02-01 00:00:00"},
	}
	require.Equal(t, []string{"zeta", "alpha", "mid"}, texts(Order(in, model.SortNameAsc)))
	require.Equal(t, []string{"zeta", "alpha", "mid"}, texts(Order(in, model.SortDateAsc)))
}

func TestDateModes(t *testing.T) {
	in := []model.Message{
		{Text: "second", Timestamp: "2024-01-02 10:00:00"},
		{Text: "third", Timestamp: "2024-01-03 09:00:00"},
		{Text: "first", Timestamp: "2024-01-01 23:59:59"},
	}
	require.Equal(t, []string{"first", "second", "third"}, texts(Order(in, model.SortDateAsc)))
	require.Equal(t, []string{"third", "second", "first"}, texts(Order(in, model.SortDateDesc)))
}

func TestDateComparisonIsLexicographic(t *testing.T) {
	// Not a valid layout; string order still decides.
	in := []model.Message{
		{Text: "a", Timestamp: "9"},
		{Text: "b", Timestamp: "10"},
	}
	require.Equal(t, []string{"b", "a"}, texts(Order(in, model.SortDateAsc)))
}

func TestNoneKeepsInputOrder(t *testing.T) {
	in := []model.Message{
		{Text: "c"}, {Text: "a", Pinned: true}, {Text: "b"},
	}
	require.Equal(t, []string{"a", "c", "b"}, texts(Order(in, model.SortNone)))
}

func TestStableForEqualKeys(t *testing.T) {
	in := []model.Message{
		{Text: "same", Timestamp: "2024-01-01 00:00:01"},
		{Text: "other", Timestamp: "2024-01-01 00:00:00"},
		{Text: "same", Timestamp: "2024-01-01 00:00:00"},
	}
	asc := Order(in, model.SortNameAsc)
	require.Equal(t, []string{"other", "same", "same"}, texts(asc))
	require.Equal(t, "2024-01-01 00:00:01", asc[1].Timestamp)
	require.Equal(t, "2024-01-01 00:00:00", asc[2].Timestamp)

	desc := Order(in, model.SortNameDesc)
	require.Equal(t, []string{"same", "same", "other"}, texts(desc))
	require.Equal(t, "2024-01-01 00:00:01", desc[0].Timestamp)
}

func TestIdempotent(t *testing.T) {
	in := []model.Message{
		{Text: "d", Timestamp: "2024-01-04 00:00:00"},
		{Text: "b", Timestamp: "2024-01-02 00:00:00", Pinned: true},
		{Text: "a", Timestamp: "2024-01-01 00:00:00"},
		{Text: "c", Timestamp: "2024-01-03 00:00:00", Pinned: true},
		{Text: "a", Timestamp: "2024-01-05 00:00:00"},
	}
	for _, mode := range model.SortModes {
		once := Order(in, mode)
		require.Equal(t, once, Order(once, mode), mode.String())
	}
}

func TestEmpty(t *testing.T) {
	require.Empty(t, Order(nil, model.SortDateDesc))
}
