package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	return &student, nil
}

// List returns students joined with their rolling correctness averages.
// Results with zero questions are excluded from every average.
func (r *studentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]repositories.StudentWithAverages, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select(`alunos.id_aluno, alunos.nome, alunos.email, alunos.plano, alunos.url_foto,
			AVG(CASE WHEN qr.total_perguntas > 0 THEN qr.acertos * 1.0 / qr.total_perguntas END) AS media_geral,
			AVG(CASE WHEN qr.total_perguntas > 0 AND qr.tema = ? THEN qr.acertos * 1.0 / qr.total_perguntas END) AS media_filosofia,
			AVG(CASE WHEN qr.total_perguntas > 0 AND qr.tema = ? THEN qr.acertos * 1.0 / qr.total_perguntas END) AS media_sociologia`,
			models.TopicPhilosophy, models.TopicSociology).
		Joins("LEFT JOIN quiz_resultados qr ON qr.id_aluno = alunos.id_aluno")

	query = applyStudentFilters(query, filters)

	var rows []repositories.StudentWithAverages
	if err := query.
		Group("alunos.id_aluno, alunos.nome, alunos.email, alunos.plano, alunos.url_foto").
		Order("alunos.nome").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return rows, nil
}

func (r *studentRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id_aluno = ?", id).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update student %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id_aluno = ?", id).
		Delete(&models.Student{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete student %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}
