// Package board holds the in-memory message list shown to the user and the update
// function that moves it from one state to the next.
package board

import (
	"slices"

	"github.com/samber/lo"

	"github.com/rcliao/message-board/internal/model"
	"github.com/rcliao/message-board/internal/ordering"
)

// State is the displayed collection and the selected sort mode.
type State struct {
	Messages []model.Message `json:"messages"`
	Mode     model.SortMode  `json:"mode"`
}

// Event is something that happened to the board.
type Event interface{ isEvent() }

// Added records a message the user just created.
type Added struct{ Message model.Message }

// PinToggled flips the pinned flag of the first message with this identity.
type PinToggled struct{ Text, Timestamp string }

// Deleted removes the first message with this identity, in memory and in the store.
type Deleted struct{ Text, Timestamp string }

// PinRow toggles the pin of the message shown at 1-based Row.
type PinRow struct{ Row int }

// DeleteRow deletes the message shown at 1-based Row.
type DeleteRow struct{ Row int }

// SortChanged selects a new sort mode.
type SortChanged struct{ Mode model.SortMode }

// Synced replaces the collection with a snapshot read from the store.
type Synced struct{ Messages []model.Message }

func (Added) isEvent()       {}
func (PinToggled) isEvent()  {}
func (Deleted) isEvent()     {}
func (PinRow) isEvent()      {}
func (DeleteRow) isEvent()   {}
func (SortChanged) isEvent() {}
func (Synced) isEvent()      {}

// Effect is a persistence side effect requested by Reduce.
type Effect interface{ isEffect() }

// SaveEffect asks for Message to be persisted.
type SaveEffect struct{ Message model.Message }

// DeleteEffect asks for Message to be removed from the store.
type DeleteEffect struct{ Message model.Message }

func (SaveEffect) isEffect()   {}
func (DeleteEffect) isEffect() {}

// Reduce applies ev to st and returns the next state plus the effects to run.
// st is not modified. Pin changes stay in memory.
func Reduce(st State, ev Event) (State, []Effect) {
	next := State{Messages: slices.Clone(st.Messages), Mode: st.Mode}
	var effects []Effect

	switch e := ev.(type) {
	case Added:
		next.Messages = append(next.Messages, e.Message)
		effects = append(effects, SaveEffect{Message: e.Message})
	case PinToggled:
		if _, i, ok := findIdentity(next.Messages, e.Text, e.Timestamp); ok {
			next.Messages[i].Pinned = !next.Messages[i].Pinned
		}
	case Deleted:
		if _, i, ok := findIdentity(next.Messages, e.Text, e.Timestamp); ok {
			next.Messages = slices.Delete(next.Messages, i, i+1)
		}
		effects = append(effects, DeleteEffect{Message: model.Message{Text: e.Text, Timestamp: e.Timestamp}})
	case PinRow:
		if m, ok := RowAt(st, e.Row); ok {
			return Reduce(st, PinToggled{Text: m.Text, Timestamp: m.Timestamp})
		}
	case DeleteRow:
		if m, ok := RowAt(st, e.Row); ok {
			return Reduce(st, Deleted{Text: m.Text, Timestamp: m.Timestamp})
		}
	case SortChanged:
		next.Mode = e.Mode
	case Synced:
		next.Messages = slices.Clone(e.Messages)
	}

	next.Messages = ordering.Order(next.Messages, next.Mode)
	return next, effects
}

// RowAt returns the message displayed at 1-based row.
func RowAt(st State, row int) (model.Message, bool) {
	if row < 1 || row > len(st.Messages) {
		return model.Message{}, false
	}
	return st.Messages[row-1], true
}

func findIdentity(msgs []model.Message, text, timestamp string) (model.Message, int, bool) {
	return lo.FindIndexOf(msgs, func(m model.Message) bool {
		return m.SameIdentity(text, timestamp)
	})
}
