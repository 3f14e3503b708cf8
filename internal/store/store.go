// Package store persists messages to a kv.Store and streams snapshots of them.
//
// Writes go through a bounded command queue drained by a single writer goroutine.
// Save and Delete return a *Task immediately; callers that need the outcome wait on it.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/rcliao/message-board/internal/kv"
	"github.com/rcliao/message-board/internal/model"
)

// DefaultQueueSize is the command queue capacity used when none is configured.
const DefaultQueueSize = 64

// ErrClosed is returned by tasks submitted after Close.
var ErrClosed = errors.New("message store closed")

// Option configures a MessageStore.
type Option func(*MessageStore)

// WithClock replaces the wall clock used to build storage keys.
func WithClock(now func() time.Time) Option {
	return func(s *MessageStore) { s.now = now }
}

// WithQueueSize sets the command queue capacity.
func WithQueueSize(n int) Option {
	return func(s *MessageStore) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

type command struct {
	task *Task
	msg  model.Message
}

// MessageStore maps messages to kv entries keyed "message_<epoch_ms>".
type MessageStore struct {
	kv        kv.Store
	log       *slog.Logger
	now       func() time.Time
	ids       *idSource
	queueSize int

	// lastMillis is owned by the writer goroutine.
	lastMillis int64

	sendMu   sync.RWMutex
	closed   bool
	commands chan command
	writerWG sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc

	subsMu     sync.Mutex
	subs       map[chan []model.Message]struct{}
	subsClosed bool
	quit       chan struct{}
}

// New wraps backend and starts the writer. The MessageStore owns backend and closes it.
func New(backend kv.Store, log *slog.Logger, opts ...Option) *MessageStore {
	s := &MessageStore{
		kv:        backend,
		log:       log.With("component", "message_store", "backend", backend.Backend()),
		now:       time.Now,
		ids:       newIDSource(),
		queueSize: DefaultQueueSize,
		subs:      make(map[chan []model.Message]struct{}),
		quit:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.commands = make(chan command, s.queueSize)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.writerWG.Add(1)
	go s.run()
	return s
}

// Backend returns the name of the underlying kv backend.
func (s *MessageStore) Backend() string {
	return s.kv.Backend()
}

// Save queues a write of m under a fresh key. It does not wait for the write.
func (s *MessageStore) Save(ctx context.Context, m model.Message) *Task {
	return s.enqueue(ctx, OpSave, m)
}

// Delete queues removal of the first entry whose text and timestamp match m.
// A missing entry completes the task without error.
func (s *MessageStore) Delete(ctx context.Context, m model.Message) *Task {
	return s.enqueue(ctx, OpDelete, m)
}

func (s *MessageStore) enqueue(ctx context.Context, op Op, m model.Message) *Task {
	task := newTask(s.ids.newID(), op)

	s.sendMu.RLock()
	defer s.sendMu.RUnlock()

	if s.closed {
		task.finish("", ErrClosed)
		return task
	}
	select {
	case s.commands <- command{task: task, msg: m}:
	case <-ctx.Done():
		task.finish("", ctx.Err())
	}
	return task
}

func (s *MessageStore) run() {
	defer s.writerWG.Done()

	for cmd := range s.commands {
		var (
			key string
			err error
		)
		switch cmd.task.Op {
		case OpSave:
			key, err = s.applySave(cmd.msg)
		case OpDelete:
			key, err = s.applyDelete(cmd.msg)
		}

		if err != nil {
			s.log.Warn("Write failed", "task", cmd.task.ID, "op", cmd.task.Op, "error", err)
		} else if key != "" {
			s.publish()
		}
		cmd.task.finish(key, err)
	}
}

// nextMillis returns the current epoch millis, bumped past the previous key so two
// writes in the same millisecond do not overwrite each other.
func (s *MessageStore) nextMillis() int64 {
	ms := s.now().UnixMilli()
	if ms <= s.lastMillis {
		ms = s.lastMillis + 1
	}
	s.lastMillis = ms
	return ms
}

func (s *MessageStore) applySave(m model.Message) (string, error) {
	key := MessageKey(s.nextMillis())
	if err := s.kv.Set(s.ctx, key, EncodeMessage(m)); err != nil {
		return "", fmt.Errorf("save %s: %w", key, err)
	}
	s.log.Debug("Message saved", "key", key)
	return key, nil
}

func (s *MessageStore) applyDelete(m model.Message) (string, error) {
	entries, err := s.kv.Entries(s.ctx)
	if err != nil {
		return "", fmt.Errorf("scan entries: %w", err)
	}

	entry, found := lo.Find(entries, func(e kv.Entry) bool {
		decoded, ok := DecodeMessage(e.Value)
		return ok && decoded.SameIdentity(m.Text, m.Timestamp)
	})
	if !found {
		s.log.Debug("Delete target not found", "timestamp", m.Timestamp)
		return "", nil
	}

	if err := s.kv.Delete(s.ctx, entry.Key); err != nil {
		return "", fmt.Errorf("delete %s: %w", entry.Key, err)
	}
	s.log.Debug("Message deleted", "key", entry.Key)
	return entry.Key, nil
}

type scanResult struct {
	entries   int
	messages  []model.Message
	malformed []kv.Entry
}

func (s *MessageStore) scan(ctx context.Context) (scanResult, error) {
	entries, err := s.kv.Entries(ctx)
	if err != nil {
		return scanResult{}, fmt.Errorf("read entries: %w", err)
	}

	res := scanResult{entries: len(entries)}
	res.messages = lo.FilterMap(entries, func(e kv.Entry, _ int) (model.Message, bool) {
		m, ok := DecodeMessage(e.Value)
		if !ok {
			res.malformed = append(res.malformed, e)
		}
		return m, ok
	})
	return res, nil
}

// Load returns every entry that decodes to a message, in backend order.
// Entries that do not decode are skipped and logged.
func (s *MessageStore) Load(ctx context.Context) ([]model.Message, error) {
	res, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range res.malformed {
		s.log.Warn("Skipping malformed entry", "key", e.Key)
	}
	return res.messages, nil
}

// Subscribe streams full snapshots: one immediately, then one after every applied
// write. A subscriber that falls behind only sees the latest snapshot. The channel
// closes when ctx is done or the store is closed.
func (s *MessageStore) Subscribe(ctx context.Context) <-chan []model.Message {
	ch := make(chan []model.Message, 1)

	s.subsMu.Lock()
	if s.subsClosed {
		s.subsMu.Unlock()
		close(ch)
		return ch
	}
	if snap, err := s.Load(ctx); err != nil {
		s.log.Warn("Initial snapshot failed", "error", err)
	} else {
		ch <- snap
	}
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.quit:
		}
		s.unsubscribe(ch)
	}()
	return ch
}

func (s *MessageStore) unsubscribe(ch chan []model.Message) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *MessageStore) publish() {
	s.subsMu.Lock()
	n := len(s.subs)
	s.subsMu.Unlock()
	if n == 0 {
		return
	}

	snap, err := s.Load(s.ctx)
	if err != nil {
		s.log.Warn("Snapshot failed", "error", err)
		return
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Close applies queued writes, stops the writer, ends subscriptions and closes the
// backend.
func (s *MessageStore) Close() error {
	s.sendMu.Lock()
	if s.closed {
		s.sendMu.Unlock()
		return nil
	}
	s.closed = true
	close(s.commands)
	s.sendMu.Unlock()

	s.writerWG.Wait()
	s.cancel()

	s.subsMu.Lock()
	s.subsClosed = true
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
	s.subsMu.Unlock()
	close(s.quit)

	return s.kv.Close()
}
