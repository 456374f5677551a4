package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountStudentsByPlan(ctx context.Context) ([]repositories.PlanCount, error) {
	var counts []repositories.PlanCount
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("plano, COUNT(*) AS count").
		Group("plano").
		Order("plano").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count students by plan: %w", err)
	}
	return counts, nil
}

// AverageAccuracy averages acertos/total_perguntas over results with at least
// one question; rows with zero questions never enter the average.
func (r *dashboardRepository) AverageAccuracy(ctx context.Context, topic *models.QuizTopic) (*float64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.QuizResult{}).
		Select("AVG(acertos * 1.0 / total_perguntas) AS media").
		Where("total_perguntas > 0")

	if topic != nil {
		query = query.Where("tema = ?", *topic)
	}

	var row struct {
		Media *float64 `gorm:"column:media"`
	}
	if err := query.Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to compute average accuracy: %w", err)
	}

	return row.Media, nil
}

func (r *dashboardRepository) DailyActiveStudents(ctx context.Context, since time.Time, timezone string) ([]repositories.DayCount, error) {
	var counts []repositories.DayCount
	if err := r.db.WithContext(ctx).
		Model(&models.QuizResult{}).
		Select("to_char(data_criacao AT TIME ZONE ?, 'YYYY-MM-DD') AS dia, COUNT(DISTINCT id_aluno) AS students", timezone).
		Where("data_criacao >= ?", since).
		Group("dia").
		Order("dia ASC").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count daily active students: %w", err)
	}
	return counts, nil
}
