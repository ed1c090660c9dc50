package typesense

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/satisfaction-feedback/pkg/config"
)

func TestClient_Integration(t *testing.T) {
	url := os.Getenv("TEST_TYPESENSE_URL")
	if url == "" {
		t.Skip("TEST_TYPESENSE_URL not set")
	}

	client, err := NewClient(&config.TypesenseConfig{URL: url, APIKey: os.Getenv("TEST_TYPESENSE_API_KEY")})
	require.NoError(t, err)

	ctx := context.Background()
	collection := "feedback_test"

	require.NoError(t, client.InitFeedbackSchema(ctx, collection))
	// second call finds the existing collection
	require.NoError(t, client.InitFeedbackSchema(ctx, collection))

	err = client.UpsertDocument(ctx, collection, map[string]interface{}{
		"id":                 "feedback_1",
		"feedback_id":        int64(1),
		"satisfaction_level": "satisfied",
		"date":               "2024-03-01",
		"time":               "09:00:00",
		"weekday":            "Friday",
		"created_at":         time.Now().Unix(),
	})
	assert.NoError(t, err)
}
