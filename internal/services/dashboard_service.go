package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

const activityWindowDays = 7

type dashboardService struct {
	repo     repositories.Repository
	logger   *slog.Logger
	location *time.Location
}

// NewDashboardService creates the dashboard aggregator. The timezone pins
// calendar-day bucketing so the 7-day series is stable regardless of the
// server's local clock.
func NewDashboardService(repo repositories.Repository, logger *slog.Logger, timezone string) (DashboardService, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid statistics timezone %q: %w", timezone, err)
	}

	return &dashboardService{
		repo:     repo,
		logger:   logger,
		location: location,
	}, nil
}

func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStatsResponse, error) {
	totalStudents, err := s.repo.Dashboard().CountStudents(ctx)
	if err != nil {
		return nil, err
	}

	byPlan, err := s.repo.Dashboard().CountStudentsByPlan(ctx)
	if err != nil {
		return nil, err
	}
	if byPlan == nil {
		byPlan = []repositories.PlanCount{}
	}

	overall, err := s.repo.Dashboard().AverageAccuracy(ctx, nil)
	if err != nil {
		return nil, err
	}

	philosophyTopic := models.TopicPhilosophy
	philosophy, err := s.repo.Dashboard().AverageAccuracy(ctx, &philosophyTopic)
	if err != nil {
		return nil, err
	}

	sociologyTopic := models.TopicSociology
	sociology, err := s.repo.Dashboard().AverageAccuracy(ctx, &sociologyTopic)
	if err != nil {
		return nil, err
	}

	series, err := s.activitySeries(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStatsResponse{
		TotalStudents:     totalStudents,
		StudentsByPlan:    byPlan,
		OverallAverage:    formatPercent(overall),
		PhilosophyAverage: formatPercent(philosophy),
		SociologyAverage:  formatPercent(sociology),
		QuizzesPerDay:     series,
	}, nil
}

// activitySeries builds the trailing 7-day series, today included, with
// zero-filled gaps. Days are keyed by calendar date in the pinned timezone.
func (s *dashboardService) activitySeries(ctx context.Context) (DailySeries, error) {
	now := time.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	windowStart := today.AddDate(0, 0, -(activityWindowDays - 1))

	counts, err := s.repo.Dashboard().DailyActiveStudents(ctx, windowStart, s.location.String())
	if err != nil {
		return DailySeries{}, err
	}

	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day] = c.Count
	}

	series := DailySeries{
		Labels: make([]string, 0, activityWindowDays),
		Data:   make([]int64, 0, activityWindowDays),
	}
	for i := 0; i < activityWindowDays; i++ {
		day := windowStart.AddDate(0, 0, i)
		series.Labels = append(series.Labels, day.Format("02/01"))
		series.Data = append(series.Data, byDay[day.Format("2006-01-02")])
	}

	return series, nil
}

func formatPercent(avg *float64) string {
	v := 0.0
	if avg != nil {
		v = *avg
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
