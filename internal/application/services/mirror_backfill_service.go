package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	"github.com/zatekoja/satisfaction-feedback/pkg/retry"
)

// BackfillBatchSize is the number of entries read per page.
const BackfillBatchSize = 100

// BackfillSummary reports a mirror backfill run.
type BackfillSummary struct {
	TotalProcessed int
	SuccessCount   int
	FailureCount   int
}

// MirrorBackfillService re-publishes stored entries to the mirror store to
// repair gaps left by failed best-effort writes.
type MirrorBackfillService struct {
	repo        repositories.FeedbackRepository
	mirror      *MirrorNotifier
	workerCount int
	maxRetries  int
}

// NewMirrorBackfillService creates a new backfill service
func NewMirrorBackfillService(
	repo repositories.FeedbackRepository,
	mirror *MirrorNotifier,
	workers int,
	maxRetries int,
) *MirrorBackfillService {
	if workers <= 0 {
		workers = 1
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &MirrorBackfillService{
		repo:        repo,
		mirror:      mirror,
		workerCount: workers,
		maxRetries:  maxRetries,
	}
}

// BackfillSince writes every entry with an ID greater than sinceID, oldest
// first.
func (s *MirrorBackfillService) BackfillSince(ctx context.Context, sinceID int64) (*BackfillSummary, error) {
	if s.mirror == nil || !s.mirror.Status().Available {
		return nil, fmt.Errorf("no mirror store configured")
	}

	var processed, success, failure int64

	entryChan := make(chan entities.FeedbackEntry, BackfillBatchSize)
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range entryChan {
				err := s.writeWithRetry(ctx, &entry)
				atomic.AddInt64(&processed, 1)
				if err != nil {
					atomic.AddInt64(&failure, 1)
				} else {
					atomic.AddInt64(&success, 1)
				}
			}
		}()
	}

	produceErr := s.produce(ctx, sinceID, entryChan)
	close(entryChan)
	wg.Wait()

	summary := &BackfillSummary{
		TotalProcessed: int(processed),
		SuccessCount:   int(success),
		FailureCount:   int(failure),
	}
	if produceErr != nil {
		return summary, produceErr
	}
	return summary, nil
}

func (s *MirrorBackfillService) produce(ctx context.Context, sinceID int64, out chan<- entities.FeedbackEntry) error {
	filter := repositories.RecordFilter{AfterID: sinceID}
	offset := 0
	for {
		entries, err := s.repo.List(ctx, filter, repositories.Ascending, BackfillBatchSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list entries for backfill: %w", err)
		}

		for _, entry := range entries {
			select {
			case out <- entry:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if len(entries) < BackfillBatchSize {
			return nil
		}
		offset += len(entries)
	}
}

func (s *MirrorBackfillService) writeWithRetry(ctx context.Context, entry *entities.FeedbackEntry) error {
	err := retry.Do(ctx, retry.QuickConfig(s.maxRetries), func() error {
		return s.mirror.Write(ctx, entry).Err
	})
	if err != nil {
		log.Warn().Err(err).Str("key", entry.MirrorKey()).Int("attempts", s.maxRetries).Msg("Backfill gave up on entry")
	}
	return err
}
