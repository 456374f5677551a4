package postgres

import (
	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/repositories"
)

// applyStudentFilters applies common filters to student queries.
func applyStudentFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.Search != nil && *filters.Search != "" {
		pattern := "%" + *filters.Search + "%"
		query = query.Where("alunos.nome ILIKE ? OR alunos.email ILIKE ?", pattern, pattern)
	}
	if filters.Plan != nil && *filters.Plan != "" {
		query = query.Where("alunos.plano = ?", *filters.Plan)
	}
	return query
}
