package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
	"github.com/sofia-edu/admin-service/internal/services"
)

func setupDashboardRouter(service *mockDashboardService) *httptest.Server {
	router := testRouter()
	handler := NewDashboardHandler(service, testLogger())
	router.GET("/admin/stats", handler.GetStats)
	return httptest.NewServer(router)
}

func TestGetStats_Success(t *testing.T) {
	service := &mockDashboardService{
		stats: &services.DashboardStatsResponse{
			TotalStudents: 12,
			StudentsByPlan: []repositories.PlanCount{
				{Plan: models.PlanFreemium, Count: 9},
				{Plan: models.PlanPremium, Count: 3},
			},
			OverallAverage:    "72.50%",
			PhilosophyAverage: "80.00%",
			SociologyAverage:  "0.00%",
			QuizzesPerDay: services.DailySeries{
				Labels: []string{"26/08", "27/08", "28/08", "29/08", "30/08", "31/08", "01/09"},
				Data:   []int64{0, 2, 1, 0, 0, 3, 1},
			},
		},
	}
	server := setupDashboardRouter(service)
	defer server.Close()

	resp, err := http.Get(server.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if payload["total_alunos"] != float64(12) {
		t.Errorf("expected total_alunos 12, got %v", payload["total_alunos"])
	}
	if payload["media_geral_acertos"] != "72.50%" {
		t.Errorf("expected formatted overall average, got %v", payload["media_geral_acertos"])
	}
	series, ok := payload["quizzes_por_dia"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected quizzes_por_dia object, got %T", payload["quizzes_por_dia"])
	}
	if labels, ok := series["labels"].([]interface{}); !ok || len(labels) != 7 {
		t.Errorf("expected 7 labels, got %v", series["labels"])
	}
}

func TestGetStats_InternalErrorEchoesDetail(t *testing.T) {
	service := &mockDashboardService{err: errors.New("aggregate query timed out")}
	server := setupDashboardRouter(service)
	defer server.Close()

	resp, err := http.Get(server.URL + "/admin/stats")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var payload ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !strings.Contains(payload.Message, "aggregate query timed out") {
		t.Errorf("expected error detail in message, got %q", payload.Message)
	}
}
