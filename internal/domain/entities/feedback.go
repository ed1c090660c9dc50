package entities

import (
	"fmt"
	"time"
)

// SatisfactionLevel is the closed set of ratings a kiosk user can submit.
type SatisfactionLevel string

const (
	SatisfactionVerySatisfied SatisfactionLevel = "very_satisfied"
	SatisfactionSatisfied     SatisfactionLevel = "satisfied"
	SatisfactionDissatisfied  SatisfactionLevel = "dissatisfied"
)

// SatisfactionLevels lists every level in display order.
var SatisfactionLevels = []SatisfactionLevel{
	SatisfactionVerySatisfied,
	SatisfactionSatisfied,
	SatisfactionDissatisfied,
}

// IsValid reports whether l belongs to the closed enumeration.
func (l SatisfactionLevel) IsValid() bool {
	switch l {
	case SatisfactionVerySatisfied, SatisfactionSatisfied, SatisfactionDissatisfied:
		return true
	}
	return false
}

// ParseSatisfactionLevel validates a raw token.
func ParseSatisfactionLevel(raw string) (SatisfactionLevel, error) {
	l := SatisfactionLevel(raw)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid satisfaction level %q", raw)
	}
	return l, nil
}

const (
	// DateLayout is the stored calendar date format.
	DateLayout = "2006-01-02"
	// TimeLayout is the stored wall-clock time format.
	TimeLayout = "15:04:05"
)

// FeedbackEntry is one submitted rating. Entries are immutable once stored.
type FeedbackEntry struct {
	ID                int64             `json:"id" db:"id"`
	SatisfactionLevel SatisfactionLevel `json:"satisfactionLevel" db:"satisfaction_level"`
	Date              string            `json:"date" db:"entry_date"`
	Time              string            `json:"time" db:"entry_time"`
	Weekday           string            `json:"weekday" db:"weekday"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
}

// MirrorKey is the document key used in the secondary store.
func (e *FeedbackEntry) MirrorKey() string {
	return fmt.Sprintf("feedback_%d", e.ID)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
