package services

import (
	"context"
	"errors"
	"time"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
	"github.com/sofia-edu/admin-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request types from the validator package.
type AdminLoginRequest = validator.AdminLoginRequest
type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest

type ValidationErrors = validator.ValidationErrors

// AdminResponse is the admin identity returned by login and check_session.
type AdminResponse struct {
	ID    uint   `json:"id_admin"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// StudentListItem is one row of the admin student listing, with averages.
type StudentListItem = repositories.StudentWithAverages

// QuizResultResponse is one scored attempt as shown in the admin panel.
type QuizResultResponse struct {
	Topic          models.QuizTopic `json:"tema"`
	CorrectCount   int              `json:"acertos"`
	TotalQuestions int              `json:"total_perguntas"`
	CreatedAt      time.Time        `json:"data_criacao"`
}

// DailySeries feeds the dashboard's activity line chart: one labeled point
// per calendar day.
type DailySeries struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// DashboardStatsResponse aggregates everything the admin dashboard renders.
type DashboardStatsResponse struct {
	TotalStudents     int64                    `json:"total_alunos"`
	StudentsByPlan    []repositories.PlanCount `json:"alunos_por_plano"`
	OverallAverage    string                   `json:"media_geral_acertos"`
	PhilosophyAverage string                   `json:"media_filosofia"`
	SociologyAverage  string                   `json:"media_sociologia"`
	QuizzesPerDay     DailySeries              `json:"quizzes_por_dia"`
}

// ===== ERRORS =====

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrNotAuthenticated   = errors.New("admin not authenticated")

	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrEmptyUpdate     = errors.New("no fields to update")

	ErrChatUnavailable = errors.New("chat assistant unavailable")
	ErrChatFailed      = errors.New("chat assistant request failed")
	ErrEmptyMessage    = errors.New("message cannot be empty")
)

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Login verifies credentials and opens a session, returning the admin
	// and the session token.
	Login(ctx context.Context, req *AdminLoginRequest) (*AdminResponse, string, error)
	// Logout closes the session; unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error
	// Check resolves a session token to its admin, or ErrNotAuthenticated.
	Check(ctx context.Context, token string) (*AdminResponse, error)
}

type StudentService interface {
	List(ctx context.Context, search, plan string) ([]StudentListItem, error)
	Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) error
	Delete(ctx context.Context, id uint) error
	Results(ctx context.Context, studentID uint) ([]QuizResultResponse, error)
	// ExportRoster renders the student listing as a spreadsheet.
	ExportRoster(ctx context.Context) ([]byte, error)
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardStatsResponse, error)
}

// ServiceManager wires all services together.
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Dashboard() DashboardService
	Chat() *ChatRegistry

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
