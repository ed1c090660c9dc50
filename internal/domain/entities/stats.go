package entities

import "math"

// LevelCounts holds a count per satisfaction level. Levels absent from the
// data are reported as zero.
type LevelCounts struct {
	VerySatisfied int64 `json:"very_satisfied"`
	Satisfied     int64 `json:"satisfied"`
	Dissatisfied  int64 `json:"dissatisfied"`
}

// Get returns the count for a level; unknown levels count as zero.
func (c LevelCounts) Get(level SatisfactionLevel) int64 {
	switch level {
	case SatisfactionVerySatisfied:
		return c.VerySatisfied
	case SatisfactionSatisfied:
		return c.Satisfied
	case SatisfactionDissatisfied:
		return c.Dissatisfied
	}
	return 0
}

// Add increments the count for a level. Unknown levels are ignored.
func (c *LevelCounts) Add(level SatisfactionLevel, n int64) {
	switch level {
	case SatisfactionVerySatisfied:
		c.VerySatisfied += n
	case SatisfactionSatisfied:
		c.Satisfied += n
	case SatisfactionDissatisfied:
		c.Dissatisfied += n
	}
}

// Sum is the total over all levels.
func (c LevelCounts) Sum() int64 {
	return c.VerySatisfied + c.Satisfied + c.Dissatisfied
}

// LevelPercentages holds a float value per level.
type LevelPercentages struct {
	VerySatisfied float64 `json:"very_satisfied"`
	Satisfied     float64 `json:"satisfied"`
	Dissatisfied  float64 `json:"dissatisfied"`
}

// Set assigns the value for a level.
func (p *LevelPercentages) Set(level SatisfactionLevel, v float64) {
	switch level {
	case SatisfactionVerySatisfied:
		p.VerySatisfied = v
	case SatisfactionSatisfied:
		p.Satisfied = v
	case SatisfactionDissatisfied:
		p.Dissatisfied = v
	}
}

// OverallStats is the all-time distribution.
type OverallStats struct {
	LevelCounts
	Total       int64            `json:"total"`
	Percentages LevelPercentages `json:"percentages"`
}

// DailyStats is the distribution for one calendar date.
type DailyStats struct {
	Date string `json:"date"`
	LevelCounts
	Total int64 `json:"total"`
}

// PeriodStats is the distribution over an inclusive date range.
type PeriodStats struct {
	Start string `json:"start"`
	End   string `json:"end"`
	LevelCounts
	Total int64 `json:"total"`
}

// ComparisonStats compares two independent periods.
type ComparisonStats struct {
	Period1  PeriodStats      `json:"period1"`
	Period2  PeriodStats      `json:"period2"`
	Variance LevelPercentages `json:"variance"`
}

// HistoryPage is one window of the filtered history.
type HistoryPage struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int64           `json:"totalPages"`
	Records    []FeedbackEntry `json:"records"`
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentages computes each level's share of the total. All values are zero
// when the total is zero.
func Percentages(c LevelCounts) LevelPercentages {
	var p LevelPercentages
	total := c.Sum()
	if total == 0 {
		return p
	}
	for _, level := range SatisfactionLevels {
		p.Set(level, Round2(float64(c.Get(level))/float64(total)*100))
	}
	return p
}

// Variance computes the percentage change from p1 to p2 per level. A level
// absent in p1 reports 100 when present in p2, otherwise 0.
func Variance(p1, p2 LevelCounts) LevelPercentages {
	var v LevelPercentages
	for _, level := range SatisfactionLevels {
		a, b := p1.Get(level), p2.Get(level)
		switch {
		case a == 0 && b > 0:
			v.Set(level, 100)
		case a == 0:
			v.Set(level, 0)
		default:
			v.Set(level, Round2(float64(b-a)/float64(a)*100))
		}
	}
	return v
}
