package ingest

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

// Ingestor keeps at most one live decode per key (a link ID).
// Submitting a new upload for a key cancels the decode still running for it,
// so the newest upload is the only one that can emit.
type Ingestor struct {
	pipeline *Pipeline
	logger   logger.Logger

	mu     sync.Mutex
	latest map[string]*Task
}

// NewIngestor creates an ingestor backed by p.
func NewIngestor(p *Pipeline, log logger.Logger) *Ingestor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Ingestor{
		pipeline: p,
		logger:   log,
		latest:   make(map[string]*Task),
	}
}

// Submit starts decoding up for key.
//
// emit receives the patch exactly once, after the content is fully decoded,
// and only if the decode succeeded and was not superseded. emit runs while the
// ingestor lock is held and must not call back into the Ingestor.
//
// With no file selected Submit is a no-op: nothing is emitted, any decode in
// flight for key keeps running, and the returned Task reports KindNoFile.
func (in *Ingestor) Submit(ctx context.Context, key string, up *Upload, current domain.Size, emit func(domain.Patch)) *Task {
	if up == nil || up.Content == nil {
		return NewFailedTask(decodeErr(KindNoFile, ErrNoFile))
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if prev := in.latest[key]; prev != nil {
		in.logger.Debug("cancelling superseded upload", logger.String("key", key))
		prev.Cancel()
	}

	var t *Task
	t = startTask(ctx, func(ctx context.Context) (domain.Patch, error) {
		patch, err := in.pipeline.Ingest(ctx, up, current)

		in.mu.Lock()
		defer in.mu.Unlock()

		if in.latest[key] != t {
			return domain.Patch{}, decodeErr(KindCanceled, ErrSuperseded)
		}
		delete(in.latest, key)

		if err != nil {
			in.logger.Warn("upload ingestion failed",
				logger.String("key", key),
				logger.String("kind", string(KindOf(err))),
				logger.Error(err))
			return domain.Patch{}, err
		}

		if emit != nil {
			emit(patch)
		}
		return patch, nil
	})
	in.latest[key] = t

	return t
}

// Pending reports whether a decode is in flight for key.
func (in *Ingestor) Pending(key string) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	_, ok := in.latest[key]
	return ok
}

// CancelAll aborts every decode in flight. Their emissions are dropped.
func (in *Ingestor) CancelAll() {
	in.mu.Lock()
	defer in.mu.Unlock()
	for key, t := range in.latest {
		t.Cancel()
		delete(in.latest, key)
	}
}
