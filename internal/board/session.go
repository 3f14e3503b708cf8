package board

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/rcliao/message-board/internal/model"
	"github.com/rcliao/message-board/internal/store"
)

// ErrStopped is returned by Dispatch once the session loop has exited.
var ErrStopped = errors.New("session stopped")

const eventQueueSize = 32

// Store is the persistence the session drives.
type Store interface {
	Save(ctx context.Context, m model.Message) *store.Task
	Delete(ctx context.Context, m model.Message) *store.Task
	Subscribe(ctx context.Context) <-chan []model.Message
}

// Session owns a board State. Events and store snapshots are applied one at a time
// by Run; writes are handed to the store without waiting for them.
type Session struct {
	store Store
	log   *slog.Logger

	events  chan Event
	updates chan State
	stopped chan struct{}

	mu      sync.RWMutex
	state   State
	pending []*store.Task
}

// NewSession creates a session showing messages in mode.
func NewSession(st Store, log *slog.Logger, mode model.SortMode) *Session {
	return &Session{
		store:   st,
		log:     log.With("component", "session"),
		events:  make(chan Event, eventQueueSize),
		updates: make(chan State, 1),
		stopped: make(chan struct{}),
		state:   State{Mode: mode},
	}
}

// Run applies events and store snapshots until ctx is done.
func (s *Session) Run(ctx context.Context) {
	defer close(s.stopped)

	snapshots := s.store.Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			s.apply(ctx, Synced{Messages: snap})
		case ev := <-s.events:
			// A snapshot already delivered is applied before the event.
			select {
			case snap, ok := <-snapshots:
				if ok {
					s.apply(ctx, Synced{Messages: snap})
				} else {
					snapshots = nil
				}
			default:
			}
			s.apply(ctx, ev)
		}
	}
}

func (s *Session) apply(ctx context.Context, ev Event) {
	s.mu.Lock()
	s.warnMissingRow(ev)
	next, effects := Reduce(s.state, ev)
	s.state = next
	s.prunePending()
	s.mu.Unlock()

	for _, eff := range effects {
		var task *store.Task
		switch e := eff.(type) {
		case SaveEffect:
			task = s.store.Save(ctx, e.Message)
		case DeleteEffect:
			task = s.store.Delete(ctx, e.Message)
		}
		if task == nil {
			continue
		}
		s.mu.Lock()
		s.pending = append(s.pending, task)
		s.mu.Unlock()
	}

	select {
	case <-s.updates:
	default:
	}
	s.updates <- s.View()
}

// warnMissingRow logs row events that point past the board. Callers hold mu.
func (s *Session) warnMissingRow(ev Event) {
	var row int
	switch e := ev.(type) {
	case PinRow:
		row = e.Row
	case DeleteRow:
		row = e.Row
	default:
		return
	}
	if _, ok := RowAt(s.state, row); !ok {
		s.log.Warn("No such row", "row", row, "rows", len(s.state.Messages))
	}
}

// prunePending drops finished writes, logging failures. Callers hold mu.
func (s *Session) prunePending() {
	s.pending = lo.Filter(s.pending, func(t *store.Task, _ int) bool {
		select {
		case <-t.Done():
			if err := t.Err(); err != nil {
				s.log.Warn("Write failed", "task", t.ID, "op", t.Op, "error", err)
			}
			return false
		default:
			return true
		}
	})
}

// Dispatch queues ev for Run. It only blocks while the queue is full.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// View returns a copy of the current state.
func (s *Session) View() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Messages: append([]model.Message(nil), s.state.Messages...), Mode: s.state.Mode}
}

// Updates delivers the state after each applied event. Only the latest is kept.
func (s *Session) Updates() <-chan State {
	return s.updates
}

// Flush waits for every write still pending and returns the first failure.
// Writes that finished earlier were already logged by Run.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()

	if err := store.WaitAll(ctx, tasks...); err != nil {
		s.log.Warn("Pending write failed", "error", err)
		return err
	}
	return nil
}
