// Package mirror holds the secondary stores that receive best-effort copies
// of feedback entries.
package mirror

import (
	"time"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// Document is the store-neutral payload written for an entry.
func Document(entry *entities.FeedbackEntry) map[string]interface{} {
	return map[string]interface{}{
		"id":                entry.ID,
		"satisfactionLevel": string(entry.SatisfactionLevel),
		"date":              entry.Date,
		"time":              entry.Time,
		"weekday":           entry.Weekday,
		"createdAt":         entry.CreatedAt.Format(time.RFC3339Nano),
	}
}
