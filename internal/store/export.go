package store

import (
	"context"

	"github.com/rcliao/message-board/internal/model"
)

// Export returns every decodable message.
func (s *MessageStore) Export(ctx context.Context) ([]model.Message, error) {
	return s.Load(ctx)
}

// Import saves each message as a new entry and waits for the writes. Returns the
// number of messages written before the first failure.
func (s *MessageStore) Import(ctx context.Context, messages []model.Message) (int, error) {
	tasks := make([]*Task, 0, len(messages))
	for _, m := range messages {
		tasks = append(tasks, s.Save(ctx, m))
	}

	imported := 0
	for _, t := range tasks {
		if err := t.Wait(ctx); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
