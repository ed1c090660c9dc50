package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

const (
	// DefaultPerPage is the history page size when none is requested.
	DefaultPerPage = 50
	// MaxPerPage bounds the history page size.
	MaxPerPage = 500
)

// HistoryQuery holds history browsing parameters. Zero Page and PerPage
// select the defaults.
type HistoryQuery struct {
	Page      int
	PerPage   int
	Query     string
	Level     string
	DateStart string
	DateEnd   string
}

// ReportingService answers the admin dashboard queries.
type ReportingService struct {
	repo  repositories.FeedbackRepository
	clock Clock
}

// NewReportingService creates a new reporting service
func NewReportingService(repo repositories.FeedbackRepository, clock Clock) *ReportingService {
	return &ReportingService{repo: repo, clock: clock}
}

func requireAdmin(admin *entities.AdminSession) error {
	if admin == nil {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	return nil
}

// OverallStats returns the all-time distribution with percentages.
func (s *ReportingService) OverallStats(ctx context.Context, admin *entities.AdminSession) (*entities.OverallStats, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByLevel(ctx, repositories.RecordFilter{})
	if err != nil {
		return nil, err
	}

	return &entities.OverallStats{
		LevelCounts: counts,
		Total:       counts.Sum(),
		Percentages: entities.Percentages(counts),
	}, nil
}

// DailyStats returns the distribution for date, or for today when date is
// empty.
func (s *ReportingService) DailyStats(ctx context.Context, admin *entities.AdminSession, date string) (*entities.DailyStats, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	if date == "" {
		date = s.clock.Today()
	} else if !entities.ValidDate(date) {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}

	counts, err := s.repo.CountByLevel(ctx, repositories.RecordFilter{Date: date})
	if err != nil {
		return nil, err
	}

	return &entities.DailyStats{Date: date, LevelCounts: counts, Total: counts.Sum()}, nil
}

// ComparisonStats compares two inclusive date ranges. All four bounds are
// required.
func (s *ReportingService) ComparisonStats(
	ctx context.Context,
	admin *entities.AdminSession,
	p1Start, p1End, p2Start, p2End string,
) (*entities.ComparisonStats, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	for _, d := range []string{p1Start, p1End, p2Start, p2End} {
		if d == "" {
			return nil, apperrors.NewValidationError("all period dates are required")
		}
		if !entities.ValidDate(d) {
			return nil, apperrors.NewValidationError("period dates must be YYYY-MM-DD")
		}
	}

	p1, err := s.period(ctx, p1Start, p1End)
	if err != nil {
		return nil, err
	}
	p2, err := s.period(ctx, p2Start, p2End)
	if err != nil {
		return nil, err
	}

	return &entities.ComparisonStats{
		Period1:  *p1,
		Period2:  *p2,
		Variance: entities.Variance(p1.LevelCounts, p2.LevelCounts),
	}, nil
}

func (s *ReportingService) period(ctx context.Context, start, end string) (*entities.PeriodStats, error) {
	counts, err := s.repo.CountByLevel(ctx, repositories.RecordFilter{DateStart: start, DateEnd: end})
	if err != nil {
		return nil, err
	}
	return &entities.PeriodStats{Start: start, End: end, LevelCounts: counts, Total: counts.Sum()}, nil
}

// History returns one page of the filtered history, newest first.
func (s *ReportingService) History(ctx context.Context, admin *entities.AdminSession, q HistoryQuery) (*entities.HistoryPage, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	page, perPage := q.Page, q.PerPage
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		return nil, apperrors.NewValidationError("page must be at least 1")
	}
	if perPage < 1 {
		return nil, apperrors.NewValidationError("perPage must be at least 1")
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	filter, err := historyFilter(q)
	if err != nil {
		return nil, err
	}

	result := &entities.HistoryPage{
		Page:    page,
		PerPage: perPage,
		Records: []entities.FeedbackEntry{},
	}

	// A numeric query too large for an id can never match.
	if filter == nil {
		return result, nil
	}

	total, err := s.repo.Count(ctx, *filter)
	if err != nil {
		return nil, err
	}
	result.Total = total
	result.TotalPages = (total + int64(perPage) - 1) / int64(perPage)

	// Compare page numbers before multiplying so a huge page cannot wrap
	if int64(page-1) >= result.TotalPages {
		return result, nil
	}
	offset := (page - 1) * perPage

	records, err := s.repo.List(ctx, *filter, repositories.Descending, perPage, offset)
	if err != nil {
		return nil, err
	}
	result.Records = records

	return result, nil
}

// historyFilter translates query parameters into a store filter. It returns
// nil when the filter cannot match any entry.
func historyFilter(q HistoryQuery) (*repositories.RecordFilter, error) {
	var filter repositories.RecordFilter

	if level := entities.SatisfactionLevel(q.Level); level.IsValid() {
		filter.Level = level
	}

	if q.DateStart != "" {
		if !entities.ValidDate(q.DateStart) {
			return nil, apperrors.NewValidationError("dateStart must be YYYY-MM-DD")
		}
		filter.DateStart = q.DateStart
	}
	if q.DateEnd != "" {
		if !entities.ValidDate(q.DateEnd) {
			return nil, apperrors.NewValidationError("dateEnd must be YYYY-MM-DD")
		}
		filter.DateEnd = q.DateEnd
	}

	text := strings.TrimSpace(q.Query)
	if text != "" && isDigits(text) {
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, nil
		}
		filter.ID = &id
	}

	return &filter, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// AvailableDates lists every date with feedback, newest first.
func (s *ReportingService) AvailableDates(ctx context.Context, admin *entities.AdminSession) ([]string, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.repo.DistinctDates(ctx)
}
