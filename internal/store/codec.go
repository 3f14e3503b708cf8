package store

import (
	"strconv"
	"strings"

	"github.com/rcliao/message-board/internal/model"
)

// KeyPrefix starts every message key.
const KeyPrefix = "message_"

const fieldSep = "|"

// MessageKey builds the storage key for a write at epochMillis.
func MessageKey(epochMillis int64) string {
	return KeyPrefix + strconv.FormatInt(epochMillis, 10)
}

// EncodeMessage renders m as text|timestamp|pinned. The separator is not escaped,
// so text containing "|" will not decode.
func EncodeMessage(m model.Message) string {
	return m.Text + fieldSep + m.Timestamp + fieldSep + strconv.FormatBool(m.Pinned)
}

// DecodeMessage parses a stored value. ok is false unless the value has exactly
// three fields. Only the literal "true" reads as pinned.
func DecodeMessage(value string) (m model.Message, ok bool) {
	parts := strings.Split(value, fieldSep)
	if len(parts) != 3 {
		return model.Message{}, false
	}
	return model.Message{
		Text:      parts[0],
		Timestamp: parts[1],
		Pinned:    parts[2] == "true",
	}, true
}
