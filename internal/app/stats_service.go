package app

import (
	"context"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/clock"
)

type StatsService struct {
	repo  EntrantRepository
	clock clock.Clock
	loc   *time.Location
}

func NewStatsService(repo EntrantRepository, clk clock.Clock, opts ...StatsServiceOption) *StatsService {
	svc := &StatsService{
		repo:  repo,
		clock: clk,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type StatsServiceOption func(*StatsService)

// WithLocation overrides the location used to delimit "today".
func WithLocation(loc *time.Location) StatsServiceOption {
	return func(s *StatsService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type Summary struct {
	Total    int
	Today    int
	ThisWeek int
}

// Summarize recomputes entrant counts from a full scan. Today is the
// calendar day containing now in the configured location; ThisWeek is
// everything at or after now-168h, not an aligned calendar week. There
// is no upper bound: DB-assigned timestamps can sit slightly ahead of
// the service clock and still belong to the window.
func (s *StatsService) Summarize(ctx context.Context) (Summary, error) {
	entrants, err := s.repo.ListAll(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.clock.Now()
	year, month, day := now.In(s.loc).Date()
	weekCutoff := now.Add(-7 * 24 * time.Hour)

	summary := Summary{Total: len(entrants)}
	for _, e := range entrants {
		y, m, d := e.CreatedAt.In(s.loc).Date()
		if y == year && m == month && d == day {
			summary.Today++
		}
		if !e.CreatedAt.Before(weekCutoff) {
			summary.ThisWeek++
		}
	}
	return summary, nil
}
