package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Op names the kind of write a Task performs.
type Op string

const (
	OpSave   Op = "save"
	OpDelete Op = "delete"
)

// Task tracks one queued write. It completes exactly once.
type Task struct {
	ID string `json:"id"`
	Op Op     `json:"op"`

	done chan struct{}
	key  string
	err  error
}

func newTask(id string, op Op) *Task {
	return &Task{ID: id, Op: op, done: make(chan struct{})}
}

func (t *Task) finish(key string, err error) {
	t.key = key
	t.err = err
	close(t.done)
}

// Done is closed once the write has been applied or has failed.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the write error. Only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Key returns the affected storage key, empty if none. Only meaningful after Done.
func (t *Task) Key() string {
	select {
	case <-t.done:
		return t.key
	default:
		return ""
	}
}

// Wait blocks until the task completes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAll waits for every task and returns the first error.
func WaitAll(ctx context.Context, tasks ...*Task) error {
	var first error
	for _, t := range tasks {
		if err := t.Wait(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type idSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDSource() *idSource {
	return &idSource{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (s *idSource) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}
