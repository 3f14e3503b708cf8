package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/message-board/internal/board"
	"github.com/rcliao/message-board/internal/kv"
	"github.com/rcliao/message-board/internal/model"
	"github.com/rcliao/message-board/internal/store"
)

var sessionNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

func TestParseSessionLine(t *testing.T) {
	action, err := parseSessionLine("add hello world", sessionNow)
	require.NoError(t, err)
	require.Equal(t, board.Added{Message: model.Message{Text: "hello world", Timestamp: "2024-05-06 07:08:09"}}, action.event)

	action, err = parseSessionLine("pin 2", sessionNow)
	require.NoError(t, err)
	require.Equal(t, board.PinRow{Row: 2}, action.event)

	action, err = parseSessionLine("  rm 1 ", sessionNow)
	require.NoError(t, err)
	require.Equal(t, board.DeleteRow{Row: 1}, action.event)

	action, err = parseSessionLine("sort date_desc", sessionNow)
	require.NoError(t, err)
	require.Equal(t, board.SortChanged{Mode: model.SortDateDesc}, action.event)

	action, err = parseSessionLine("open my draft", sessionNow)
	require.NoError(t, err)
	require.NotNil(t, action.open)
	require.Equal(t, "my draft", *action.open)

	action, err = parseSessionLine("quit", sessionNow)
	require.NoError(t, err)
	require.True(t, action.quit)

	action, err = parseSessionLine("", sessionNow)
	require.NoError(t, err)
	require.Nil(t, action.event)
}

func TestParseSessionLineErrors(t *testing.T) {
	_, err := parseSessionLine("pin 0", sessionNow)
	require.ErrorIs(t, err, errNoSuchRow)

	_, err = parseSessionLine("rm x", sessionNow)
	require.Error(t, err)

	_, err = parseSessionLine("sort sideways", sessionNow)
	require.ErrorIs(t, err, model.ErrUnknownSortMode)

	_, err = parseSessionLine("frobnicate", sessionNow)
	require.ErrorContains(t, err, "unknown command")
}

func startCLISession(t *testing.T, mode model.SortMode) (*board.Session, *store.MessageStore, context.Context) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	st := store.New(kv.NewMemoryStore(), log)
	sess := board.NewSession(st, log, mode)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		sess.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
		st.Close()
	})
	return sess, st, ctx
}

func storedTexts(t *testing.T, ctx context.Context, sess *board.Session, st *store.MessageStore) []string {
	t.Helper()
	require.NoError(t, sess.Flush(ctx))
	msgs, err := st.Load(ctx)
	require.NoError(t, err)
	var out []string
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func TestReadSessionDispatchesEvents(t *testing.T) {
	sess, st, ctx := startCLISession(t, model.SortNone)

	var out bytes.Buffer
	in := strings.NewReader("add hello\nbogus\nopen\nquit\nadd never\n")
	require.NoError(t, readSession(ctx, in, newScreen(&out), sess))

	require.Contains(t, out.String(), "unknown command")
	require.NotContains(t, out.String(), noDraft)

	require.Eventually(t, func() bool {
		if err := sess.Flush(ctx); err != nil {
			return false
		}
		msgs, err := st.Load(ctx)
		return err == nil && len(msgs) == 1 && msgs[0].Text == "hello"
	}, time.Second, 10*time.Millisecond)
}

func TestReadSessionRowCommandsFollowEarlierLines(t *testing.T) {
	sess, st, ctx := startCLISession(t, model.SortNameAsc)

	var out bytes.Buffer
	require.NoError(t, readSession(ctx, strings.NewReader("add hello\npin 1\nrm 1\nsort DATE_ASC\n"), newScreen(&out), sess))
	require.NotContains(t, out.String(), "error")

	require.Eventually(t, func() bool { return sess.View().Mode == model.SortDateAsc }, time.Second, 5*time.Millisecond)
	require.Empty(t, storedTexts(t, ctx, sess, st))

	// Row 1 is the pinned "b" once pin 2 is applied, so rm 1 must remove "b".
	out.Reset()
	require.NoError(t, readSession(ctx, strings.NewReader("add b\nadd a\n"), newScreen(&out), sess))
	require.Eventually(t, func() bool {
		if err := sess.Flush(ctx); err != nil {
			return false
		}
		msgs, err := st.Load(ctx)
		return err == nil && len(msgs) == 2
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(sess.View().Messages) == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, readSession(ctx, strings.NewReader("pin 2\nrm 1\nsort NAME_DESC\n"), newScreen(&out), sess))
	require.Eventually(t, func() bool { return sess.View().Mode == model.SortNameDesc }, time.Second, 5*time.Millisecond)
	require.Equal(t, []string{"a"}, storedTexts(t, ctx, sess, st))
	require.NotContains(t, out.String(), "error")
}
