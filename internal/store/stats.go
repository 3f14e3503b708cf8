package store

import (
	"context"

	"github.com/samber/lo"

	"github.com/rcliao/message-board/internal/kv"
	"github.com/rcliao/message-board/internal/model"
)

// Stats holds store statistics.
type Stats struct {
	DBPath    string   `json:"db_path,omitempty"`
	Backend   string   `json:"backend"`
	Entries   int      `json:"entries"`
	Messages  int      `json:"messages"`
	Pinned    int      `json:"pinned"`
	Malformed int      `json:"malformed"`
	BadKeys   []string `json:"malformed_keys,omitempty"`
}

// Stats counts stored entries, decoded messages and malformed entries.
func (s *MessageStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	res, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		DBPath:    dbPath,
		Backend:   s.kv.Backend(),
		Entries:   res.entries,
		Messages:  len(res.messages),
		Pinned:    lo.CountBy(res.messages, func(m model.Message) bool { return m.Pinned }),
		Malformed: len(res.malformed),
	}
	if len(res.malformed) > 0 {
		st.BadKeys = lo.Map(res.malformed, func(e kv.Entry, _ int) string { return e.Key })
	}
	return st, nil
}
