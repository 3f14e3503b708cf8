// Package model defines the core message data types.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the capture time format, YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrUnknownSortMode is returned by ParseSortMode for names outside the enumeration.
var ErrUnknownSortMode = errors.New("unknown sort mode")

// Message represents a user-entered message.
// Text and Timestamp together identify the message in the store.
type Message struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Pinned    bool   `json:"pinned"`
}

// NewMessage creates an unpinned message stamped with now in the local timezone.
func NewMessage(text string, now time.Time) Message {
	return Message{
		Text:      text,
		Timestamp: now.Local().Format(TimestampLayout),
	}
}

// SameIdentity reports whether m carries the given text and timestamp.
func (m Message) SameIdentity(text, timestamp string) bool {
	return m.Text == text && m.Timestamp == timestamp
}

// SortMode selects the secondary ordering applied to unpinned messages.
type SortMode int

const (
	SortNone SortMode = iota
	SortDateAsc
	SortDateDesc
	SortNameAsc
	SortNameDesc
)

// SortModes lists every mode in display order.
var SortModes = []SortMode{SortNone, SortDateAsc, SortDateDesc, SortNameAsc, SortNameDesc}

var sortModeNames = map[SortMode]string{
	SortNone:     "NONE",
	SortDateAsc:  "DATE_ASC",
	SortDateDesc: "DATE_DESC",
	SortNameAsc:  "NAME_ASC",
	SortNameDesc: "NAME_DESC",
}

var sortModeDisplay = map[SortMode]string{
	SortNone:     "None",
	SortDateAsc:  "Date Ascending",
	SortDateDesc: "Date Descending",
	SortNameAsc:  "Name Ascending",
	SortNameDesc: "Name Descending",
}

func (s SortMode) String() string {
	if name, ok := sortModeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortMode(%d)", int(s))
}

// DisplayName returns the human readable label, e.g. "Date Ascending".
func (s SortMode) DisplayName() string {
	return sortModeDisplay[s]
}

// ParseSortMode parses an enum name such as "name_asc". Empty means SortNone.
func ParseSortMode(s string) (SortMode, error) {
	if strings.TrimSpace(s) == "" {
		return SortNone, nil
	}
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, mode := range SortModes {
		if sortModeNames[mode] == want {
			return mode, nil
		}
	}
	return SortNone, fmt.Errorf("%w %q (valid: NONE, DATE_ASC, DATE_DESC, NAME_ASC, NAME_DESC)", ErrUnknownSortMode, s)
}
