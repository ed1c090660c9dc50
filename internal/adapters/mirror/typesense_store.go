package mirror

import (
	"context"
	"fmt"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

// documentUpserter is satisfied by the Typesense client wrapper.
type documentUpserter interface {
	UpsertDocument(ctx context.Context, collection string, document map[string]interface{}) error
}

// TypesenseStore mirrors entries into a Typesense collection so they can be
// faceted and searched outside the record store.
type TypesenseStore struct {
	client     documentUpserter
	collection string
}

var _ providers.MirrorStore = (*TypesenseStore)(nil)

// NewTypesenseStore creates a Typesense mirror
func NewTypesenseStore(client documentUpserter, collection string) *TypesenseStore {
	return &TypesenseStore{client: client, collection: collection}
}

// Name identifies the backend
func (s *TypesenseStore) Name() string {
	return "typesense"
}

// Available reports whether a client is configured
func (s *TypesenseStore) Available() bool {
	return s.client != nil
}

// Put upserts the entry with key as the document id
func (s *TypesenseStore) Put(ctx context.Context, key string, entry *entities.FeedbackEntry) error {
	if s.client == nil {
		return fmt.Errorf("typesense is not initialized")
	}

	document := map[string]interface{}{
		"id":                 key,
		"feedback_id":        entry.ID,
		"satisfaction_level": string(entry.SatisfactionLevel),
		"date":               entry.Date,
		"time":               entry.Time,
		"weekday":            entry.Weekday,
		"created_at":         entry.CreatedAt.Unix(),
	}

	if err := s.client.UpsertDocument(ctx, s.collection, document); err != nil {
		return fmt.Errorf("failed to upsert %s into %s: %w", key, s.collection, err)
	}
	return nil
}
