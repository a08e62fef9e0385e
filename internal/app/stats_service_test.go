package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnxs304/aniarchive-api/internal/clock"
	"github.com/bnxs304/aniarchive-api/internal/domain"
)

func TestStatsService_Summarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	entrantAt := func(id string, createdAt time.Time) domain.Entrant {
		return domain.Entrant{ID: id, Email: id + "@x.com", CreatedAt: createdAt}
	}

	t.Run("counts total, today and trailing week", func(t *testing.T) {
		repo := newFakeEntrantRepo(
			entrantAt("today-morning", time.Date(2025, 6, 10, 0, 5, 0, 0, time.UTC)),
			entrantAt("today-later", now.Add(-time.Hour)),
			entrantAt("yesterday", now.Add(-24*time.Hour)),
			entrantAt("ten-days-ago", now.Add(-10*24*time.Hour)),
		)
		svc := NewStatsService(repo, clock.NewFixed(now), WithLocation(time.UTC))

		summary, err := svc.Summarize(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.Total != 4 {
			t.Fatalf("expected total 4, got %d", summary.Total)
		}
		if summary.Today != 2 {
			t.Fatalf("expected today 2, got %d", summary.Today)
		}
		if summary.ThisWeek != 3 {
			t.Fatalf("expected this week 3, got %d", summary.ThisWeek)
		}
	})

	t.Run("week window is trailing hours, not calendar aligned", func(t *testing.T) {
		repo := newFakeEntrantRepo(
			entrantAt("exactly-168h", now.Add(-7*24*time.Hour)),
			entrantAt("just-outside", now.Add(-7*24*time.Hour-time.Second)),
		)
		svc := NewStatsService(repo, clock.NewFixed(now), WithLocation(time.UTC))

		summary, err := svc.Summarize(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.ThisWeek != 1 {
			t.Fatalf("expected only the 168h-old record, got %d", summary.ThisWeek)
		}
		if summary.Today != 0 {
			t.Fatalf("expected today 0, got %d", summary.Today)
		}
	})

	t.Run("timestamps ahead of the clock still count", func(t *testing.T) {
		// DB-side DEFAULT NOW() can land a row's timestamp slightly
		// ahead of the service clock.
		repo := newFakeEntrantRepo(entrantAt("clock-skew", now.Add(2*time.Second)))
		svc := NewStatsService(repo, clock.NewFixed(now), WithLocation(time.UTC))

		summary, err := svc.Summarize(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.Total != 1 || summary.Today != 1 || summary.ThisWeek != 1 {
			t.Fatalf("expected the skewed record in every bucket, got %+v", summary)
		}
	})

	t.Run("today respects the configured location", func(t *testing.T) {
		// 23:30 UTC on June 9 is already June 10 in UTC+2.
		late := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)
		plusTwo := time.FixedZone("UTC+2", 2*60*60)

		repo := newFakeEntrantRepo(entrantAt("late-night", late))
		svc := NewStatsService(repo, clock.NewFixed(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)), WithLocation(plusTwo))

		summary, err := svc.Summarize(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.Today != 1 {
			t.Fatalf("expected the late-night record to count as today in UTC+2, got %d", summary.Today)
		}
	})

	t.Run("empty pool yields zeros", func(t *testing.T) {
		svc := NewStatsService(newFakeEntrantRepo(), clock.NewFixed(now), WithLocation(time.UTC))

		summary, err := svc.Summarize(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary != (Summary{}) {
			t.Fatalf("expected zero summary, got %+v", summary)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		storeErr := errors.New("store unavailable")
		svc := NewStatsService(&failingListRepo{err: storeErr}, clock.NewFixed(now))

		if _, err := svc.Summarize(context.Background()); !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}
