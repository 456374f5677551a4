package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// ===== AUTH SERVICE MOCK =====

type mockAuthService struct {
	admin    *services.AdminResponse
	token    string
	loginErr error

	checkErr   error
	logoutErr  error
	lastToken  string
	logoutSeen []string
}

func (m *mockAuthService) Login(_ context.Context, _ *services.AdminLoginRequest) (*services.AdminResponse, string, error) {
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.admin, m.token, nil
}

func (m *mockAuthService) Logout(_ context.Context, token string) error {
	m.logoutSeen = append(m.logoutSeen, token)
	return m.logoutErr
}

func (m *mockAuthService) Check(_ context.Context, token string) (*services.AdminResponse, error) {
	m.lastToken = token
	if m.checkErr != nil {
		return nil, m.checkErr
	}
	if token == "" || m.admin == nil {
		return nil, services.ErrNotAuthenticated
	}
	return m.admin, nil
}

// ===== STUDENT SERVICE MOCK =====

type mockStudentService struct {
	listItems []services.StudentListItem
	listErr   error

	created   *models.Student
	createErr error

	updateErr error
	updatedID uint

	deleteErr error
	deletedID uint

	results    []services.QuizResultResponse
	resultsErr error

	export    []byte
	exportErr error
}

func (m *mockStudentService) List(_ context.Context, _, _ string) ([]services.StudentListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listItems == nil {
		return []services.StudentListItem{}, nil
	}
	return m.listItems, nil
}

func (m *mockStudentService) Create(_ context.Context, _ *services.CreateStudentRequest) (*models.Student, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *mockStudentService) Update(_ context.Context, id uint, _ *services.UpdateStudentRequest) error {
	m.updatedID = id
	return m.updateErr
}

func (m *mockStudentService) Delete(_ context.Context, id uint) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockStudentService) Results(_ context.Context, _ uint) ([]services.QuizResultResponse, error) {
	if m.resultsErr != nil {
		return nil, m.resultsErr
	}
	if m.results == nil {
		return []services.QuizResultResponse{}, nil
	}
	return m.results, nil
}

func (m *mockStudentService) ExportRoster(_ context.Context) ([]byte, error) {
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return m.export, nil
}

// ===== DASHBOARD SERVICE MOCK =====

type mockDashboardService struct {
	stats *services.DashboardStatsResponse
	err   error
}

func (m *mockDashboardService) GetStats(_ context.Context) (*services.DashboardStatsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}
