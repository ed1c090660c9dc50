package providers

import (
	"context"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// MirrorStore is a secondary document store that receives best-effort
// copies of feedback entries. Writes are keyed and idempotent.
type MirrorStore interface {
	// Name identifies the backend in logs and status payloads.
	Name() string

	// Put writes the entry under key, replacing any previous document.
	Put(ctx context.Context, key string, entry *entities.FeedbackEntry) error

	// Available reports whether the backend was initialized.
	Available() bool
}
