package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockRepository wires configurable sub-repositories for service tests.
type mockRepository struct {
	student    *mockStudentRepo
	quizResult *mockQuizResultRepo
	admin      *mockAdminRepo
	dashboard  *mockDashboardRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		student:    &mockStudentRepo{},
		quizResult: &mockQuizResultRepo{},
		admin:      &mockAdminRepo{},
		dashboard:  &mockDashboardRepo{},
	}
}

func (m *mockRepository) Student() repositories.StudentRepository       { return m.student }
func (m *mockRepository) QuizResult() repositories.QuizResultRepository { return m.quizResult }
func (m *mockRepository) Admin() repositories.AdminRepository           { return m.admin }
func (m *mockRepository) Dashboard() repositories.DashboardRepository   { return m.dashboard }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(context.Context) error { return nil }
func (m *mockRepository) Close() error               { return nil }

type mockStudentRepo struct {
	createErr  error
	created    []*models.Student
	student    *models.Student
	getByIDErr error
	listItems  []repositories.StudentWithAverages
	listErr    error
	updateRows int64
	updateErr  error
	updates    []map[string]interface{}
	deleteRows int64
	deleteErr  error
}

func (m *mockStudentRepo) Create(_ context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	student.ID = uint(len(m.created) + 1)
	m.created = append(m.created, student)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uint) (*models.Student, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.student != nil {
		return m.student, nil
	}
	return &models.Student{ID: id}, nil
}

func (m *mockStudentRepo) List(context.Context, repositories.StudentFilters) ([]repositories.StudentWithAverages, error) {
	return m.listItems, m.listErr
}

func (m *mockStudentRepo) Update(_ context.Context, _ uint, fields map[string]interface{}) (int64, error) {
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	m.updates = append(m.updates, fields)
	return m.updateRows, nil
}

func (m *mockStudentRepo) Delete(context.Context, uint) (int64, error) {
	return m.deleteRows, m.deleteErr
}

type mockQuizResultRepo struct {
	results []models.QuizResult
	listErr error
}

func (m *mockQuizResultRepo) Create(context.Context, *models.QuizResult) error { return nil }
func (m *mockQuizResultRepo) ListByStudent(context.Context, uint) ([]models.QuizResult, error) {
	return m.results, m.listErr
}

type mockAdminRepo struct {
	admin *models.Admin
	err   error
}

func (m *mockAdminRepo) GetByEmail(context.Context, string) (*models.Admin, error) {
	return m.admin, m.err
}

type mockDashboardRepo struct {
	totalStudents int64
	byPlan        []repositories.PlanCount
	overall       *float64
	philosophy    *float64
	sociology     *float64
	dailyCounts   []repositories.DayCount
}

func (m *mockDashboardRepo) CountStudents(context.Context) (int64, error) {
	return m.totalStudents, nil
}

func (m *mockDashboardRepo) CountStudentsByPlan(context.Context) ([]repositories.PlanCount, error) {
	return m.byPlan, nil
}

func (m *mockDashboardRepo) AverageAccuracy(_ context.Context, topic *models.QuizTopic) (*float64, error) {
	if topic == nil {
		return m.overall, nil
	}
	switch *topic {
	case models.TopicPhilosophy:
		return m.philosophy, nil
	case models.TopicSociology:
		return m.sociology, nil
	}
	return nil, nil
}

func (m *mockDashboardRepo) DailyActiveStudents(context.Context, time.Time, string) ([]repositories.DayCount, error) {
	return m.dailyCounts, nil
}

func floatPtr(v float64) *float64 { return &v }

func mustNoValidationErrors(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
