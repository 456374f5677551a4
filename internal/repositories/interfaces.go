package repositories

import (
	"context"
	"time"

	"github.com/sofia-edu/admin-service/internal/models"
)

// StudentFilters narrows student listings.
type StudentFilters struct {
	// Substring match over name and email.
	Search *string
	Plan   *models.Plan
}

// StudentWithAverages is a student row joined with rolling correctness
// averages. Averages are nil when the student has no quiz result with at
// least one question.
type StudentWithAverages struct {
	ID                uint        `json:"id_aluno" gorm:"column:id_aluno"`
	Name              string      `json:"nome" gorm:"column:nome"`
	Email             string      `json:"email" gorm:"column:email"`
	Plan              models.Plan `json:"plano" gorm:"column:plano"`
	PhotoURL          *string     `json:"url_foto" gorm:"column:url_foto"`
	AverageOverall    *float64    `json:"media_geral" gorm:"column:media_geral"`
	AveragePhilosophy *float64    `json:"media_filosofia" gorm:"column:media_filosofia"`
	AverageSociology  *float64    `json:"media_sociologia" gorm:"column:media_sociologia"`
}

// PlanCount is the per-plan slice of the student population.
type PlanCount struct {
	Plan  models.Plan `json:"plano" gorm:"column:plano"`
	Count int64       `json:"count" gorm:"column:count"`
}

// DayCount counts distinct active students for one calendar day
// (YYYY-MM-DD in the pinned statistics timezone).
type DayCount struct {
	Day   string `gorm:"column:dia"`
	Count int64  `gorm:"column:students"`
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]StudentWithAverages, error)
	// Update applies the given column map and returns the number of matched
	// rows.
	Update(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	// Delete returns the number of deleted rows.
	Delete(ctx context.Context, id uint) (int64, error)
}

type QuizResultRepository interface {
	Create(ctx context.Context, result *models.QuizResult) error
	// ListByStudent returns all results for one student, newest first.
	ListByStudent(ctx context.Context, studentID uint) ([]models.QuizResult, error)
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type DashboardRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountStudentsByPlan(ctx context.Context) ([]PlanCount, error)
	// AverageAccuracy computes sum-weighted-free mean of acertos/total over
	// results with total_perguntas > 0, optionally scoped to one topic. Nil
	// when no qualifying rows exist.
	AverageAccuracy(ctx context.Context, topic *models.QuizTopic) (*float64, error)
	// DailyActiveStudents buckets distinct students with results by calendar
	// day in the given IANA timezone, from `since` onward.
	DailyActiveStudents(ctx context.Context, since time.Time, timezone string) ([]DayCount, error)
}

// Repository aggregates all data access for the service.
type Repository interface {
	Student() StudentRepository
	QuizResult() QuizResultRepository
	Admin() AdminRepository
	Dashboard() DashboardRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
