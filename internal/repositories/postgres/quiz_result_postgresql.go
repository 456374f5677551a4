package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) repositories.QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

func (r *quizResultRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.QuizResult, error) {
	var results []models.QuizResult
	if err := r.db.WithContext(ctx).
		Where("id_aluno = ?", studentID).
		Order("data_criacao DESC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list quiz results for student %d: %w", studentID, err)
	}
	return results, nil
}
