package mirror

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

// documentWriter writes one document into a collection.
type documentWriter interface {
	SetDocument(ctx context.Context, collection, key string, data map[string]interface{}) error
}

type firestoreWriter struct {
	client *firestore.Client
}

func (w firestoreWriter) SetDocument(ctx context.Context, collection, key string, data map[string]interface{}) error {
	_, err := w.client.Collection(collection).Doc(key).Set(ctx, data)
	return err
}

// FirestoreStore mirrors entries into a Firestore collection.
type FirestoreStore struct {
	writer     documentWriter
	collection string
}

var _ providers.MirrorStore = (*FirestoreStore)(nil)

// NewFirestoreStore creates a Firestore mirror. A nil client yields a store
// that reports itself unavailable.
func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	var writer documentWriter
	if client != nil {
		writer = firestoreWriter{client: client}
	}
	return &FirestoreStore{writer: writer, collection: collection}
}

// Name identifies the backend
func (s *FirestoreStore) Name() string {
	return "firestore"
}

// Available reports whether Firestore was initialized
func (s *FirestoreStore) Available() bool {
	return s.writer != nil
}

// Put writes the entry as document key
func (s *FirestoreStore) Put(ctx context.Context, key string, entry *entities.FeedbackEntry) error {
	if s.writer == nil {
		return fmt.Errorf("firestore is not initialized")
	}
	if err := s.writer.SetDocument(ctx, s.collection, key, Document(entry)); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", s.collection, key, err)
	}
	return nil
}
