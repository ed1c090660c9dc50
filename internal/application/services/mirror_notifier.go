package services

import (
	"context"
	"sync"
	"time"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
)

// MirrorResult is the outcome of one mirror write. It is logged and counted,
// never returned to the submitter.
type MirrorResult struct {
	Key      string
	Backend  string
	Err      error
	Duration time.Duration
}

// MirrorNotifier forwards stored entries to the secondary store without
// blocking the caller. A nil notifier, or one without a store, is a no-op.
type MirrorNotifier struct {
	store   providers.MirrorStore
	timeout time.Duration
	metrics *observability.Metrics
	wg      sync.WaitGroup
}

// NewMirrorNotifier creates a notifier. store may be nil.
func NewMirrorNotifier(store providers.MirrorStore, timeout time.Duration, metrics *observability.Metrics) *MirrorNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MirrorNotifier{store: store, timeout: timeout, metrics: metrics}
}

// Publish writes the entry in the background. The write outlives the
// request context but is bounded by the notifier timeout.
func (n *MirrorNotifier) Publish(ctx context.Context, entry entities.FeedbackEntry) {
	if n == nil || n.store == nil || !n.store.Available() {
		return
	}

	detached := context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.Write(detached, &entry)
	}()
}

// Write performs one mirror write synchronously and logs the result.
func (n *MirrorNotifier) Write(ctx context.Context, entry *entities.FeedbackEntry) MirrorResult {
	result := MirrorResult{Key: entry.MirrorKey()}
	if n == nil || n.store == nil {
		return result
	}
	result.Backend = n.store.Name()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	result.Err = n.store.Put(ctx, result.Key, entry)
	result.Duration = time.Since(start)

	observability.RecordMirrorWrite(ctx, n.metrics, result.Backend, result.Err, result.Duration)

	logger := observability.LoggerFromContext(ctx)
	if result.Err != nil {
		logger.Warn().Err(result.Err).
			Str("key", result.Key).
			Str("backend", result.Backend).
			Dur("duration", result.Duration).
			Msg("Mirror write failed")
	} else {
		logger.Debug().
			Str("key", result.Key).
			Str("backend", result.Backend).
			Dur("duration", result.Duration).
			Msg("Mirror write succeeded")
	}

	return result
}

// Wait blocks until every in-flight background write has finished.
func (n *MirrorNotifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

// Status reports the configured backend.
func (n *MirrorNotifier) Status() entities.MirrorStatus {
	if n == nil || n.store == nil {
		return entities.MirrorStatus{Backend: "none"}
	}
	return entities.MirrorStatus{Backend: n.store.Name(), Available: n.store.Available()}
}
