package ingest

import (
	"context"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
)

// Task is a background ingestion. Its outcome is either a patch or a
// *DecodeError, never both.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	patch  domain.Patch
	err    error
}

func startTask(parent context.Context, run func(ctx context.Context) (domain.Patch, error)) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer cancel()
		t.patch, t.err = run(ctx)
	}()
	return t
}

// NewFailedTask returns a Task that already completed with err.
func NewFailedTask(err error) *Task {
	t := &Task{cancel: func() {}, done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Cancel aborts the task. It is safe to call more than once and after completion.
func (t *Task) Cancel() { t.cancel() }

// Done is closed once the outcome is available.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task completes.
func (t *Task) Wait() (domain.Patch, error) {
	<-t.done
	return t.patch, t.err
}
