package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/rcliao/message-board/internal/board"
	"github.com/rcliao/message-board/internal/model"
)

var pinnedStyle = color.New(color.FgYellow, color.OpBold)

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// renderMessages writes msgs as a table, numbering rows from 1. Pinned rows are
// highlighted.
func renderMessages(w io.Writer, msgs []model.Message) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Pin", "Timestamp", "Text"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, m := range msgs {
		pin, text := "", m.Text
		if m.Pinned {
			pin = "*"
			text = pinnedStyle.Render(text)
		}
		table.Append([]string{strconv.Itoa(i + 1), pin, m.Timestamp, text})
	}
	table.Render()
}

func printMessages(w io.Writer, msgs []model.Message) {
	if formatFlag == "text" {
		renderMessages(w, msgs)
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	printJSON(w, msgs)
}

// noDraft is shown when no draft was passed at all.
const noDraft = "No text received"

// renderDraft shows a draft on its own screen, as given.
func renderDraft(w io.Writer, draft string) {
	header := color.New(color.BgBlack, color.FgGreen).Render(" draft ")
	fmt.Fprintf(w, "%s\n\n  %s\n\n", header, draft)
}

// screen serialises output from the input loop and the redraw loop so blocks
// never interleave.
type screen struct {
	mu sync.Mutex
	w  io.Writer
}

func newScreen(w io.Writer) *screen {
	return &screen{w: w}
}

func (s *screen) printf(format string, a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, a...)
}

func (s *screen) board(st board.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\n-- sort: %s --\n", st.Mode.DisplayName())
	renderMessages(s.w, st.Messages)
}

func (s *screen) messages(msgs []model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	renderMessages(s.w, msgs)
}

func (s *screen) draft(draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	renderDraft(s.w, draft)
}
