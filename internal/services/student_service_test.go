package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/events"
	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/validator"
)

func newStudentService(repo *mockRepository, publisher events.EventPublisher) StudentService {
	return NewStudentService(repo, testLogger(), validator.New(), publisher)
}

func TestStudentService_CreateHashesPasswordAndDefaultsPlan(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher()
	svc := newStudentService(repo, publisher)

	student, err := svc.Create(context.Background(), &CreateStudentRequest{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "s1",
	})
	mustNoValidationErrors(t, err)

	if student.Plan != models.PlanFreemium {
		t.Errorf("Plan = %q, want freemium default", student.Plan)
	}
	if student.PasswordHash == "s1" {
		t.Error("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte("s1")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentCreated {
		t.Errorf("published events = %+v, want one student.created", published)
	}
}

func TestStudentService_CreateValidation(t *testing.T) {
	svc := newStudentService(newMockRepository(), nil)

	tests := []struct {
		name string
		req  *CreateStudentRequest
	}{
		{name: "missing name", req: &CreateStudentRequest{Email: "a@x.com", Password: "s"}},
		{name: "missing email", req: &CreateStudentRequest{Name: "Ana", Password: "s"}},
		{name: "missing password", req: &CreateStudentRequest{Name: "Ana", Email: "a@x.com"}},
		{name: "bad plan", req: &CreateStudentRequest{Name: "Ana", Email: "a@x.com", Password: "s", Plan: "gold"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("error = %v, want ValidationErrors", err)
			}
		})
	}
}

func TestStudentService_CreateDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	repo.student.createErr = gorm.ErrDuplicatedKey
	svc := newStudentService(repo, nil)

	_, err := svc.Create(context.Background(), &CreateStudentRequest{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "s1",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestStudentService_UpdateEmptyPatch(t *testing.T) {
	repo := newMockRepository()
	svc := newStudentService(repo, nil)

	err := svc.Update(context.Background(), 1, &UpdateStudentRequest{})
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("error = %v, want ErrEmptyUpdate", err)
	}
	if len(repo.student.updates) != 0 {
		t.Error("empty patch reached the repository")
	}
}

func TestStudentService_UpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := newMockRepository()
	repo.student.updateRows = 1
	svc := newStudentService(repo, nil)

	plan := "premium"
	err := svc.Update(context.Background(), 1, &UpdateStudentRequest{Plan: &plan})
	mustNoValidationErrors(t, err)

	if len(repo.student.updates) != 1 {
		t.Fatalf("repository received %d updates, want 1", len(repo.student.updates))
	}
	fields := repo.student.updates[0]
	if len(fields) != 1 {
		t.Errorf("patch carried %d fields, want 1: %v", len(fields), fields)
	}
	if fields["plano"] != "premium" {
		t.Errorf("plano = %v, want premium", fields["plano"])
	}
}

func TestStudentService_UpdateRehashesPassword(t *testing.T) {
	repo := newMockRepository()
	repo.student.updateRows = 1
	svc := newStudentService(repo, nil)

	senha := "nova-senha"
	err := svc.Update(context.Background(), 1, &UpdateStudentRequest{Password: &senha})
	mustNoValidationErrors(t, err)

	stored, ok := repo.student.updates[0]["senha"].(string)
	if !ok || stored == senha {
		t.Fatalf("senha field = %v, want a hash", repo.student.updates[0]["senha"])
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(senha)); err != nil {
		t.Errorf("stored hash does not match new password: %v", err)
	}
}

func TestStudentService_UpdateNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.student.updateRows = 0
	svc := newStudentService(repo, nil)

	nome := "Ana"
	err := svc.Update(context.Background(), 999, &UpdateStudentRequest{Name: &nome})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_DeleteNotFound(t *testing.T) {
	repo := newMockRepository()
	repo.student.deleteRows = 0
	svc := newStudentService(repo, nil)

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_DeletePublishesEvent(t *testing.T) {
	repo := newMockRepository()
	repo.student.deleteRows = 1
	publisher := events.NewMockEventPublisher()
	svc := newStudentService(repo, publisher)

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventStudentDeleted {
		t.Errorf("published events = %+v, want one student.deleted", published)
	}
}

func TestStudentService_ResultsUnknownStudent(t *testing.T) {
	repo := newMockRepository()
	repo.student.getByIDErr = gorm.ErrRecordNotFound
	svc := newStudentService(repo, nil)

	if _, err := svc.Results(context.Background(), 999); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_ResultsMapsToWireRows(t *testing.T) {
	repo := newMockRepository()
	repo.quizResult.results = []models.QuizResult{
		{ID: 1, StudentID: 4, Topic: models.TopicSociology, CorrectCount: 6, TotalQuestions: 10},
	}
	svc := newStudentService(repo, nil)

	rows, err := svc.Results(context.Background(), 4)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Topic != models.TopicSociology || rows[0].CorrectCount != 6 || rows[0].TotalQuestions != 10 {
		t.Errorf("row = %+v, want sociology 6/10", rows[0])
	}
}

func TestStudentService_ListNeverReturnsNil(t *testing.T) {
	svc := newStudentService(newMockRepository(), nil)

	items, err := svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if items == nil {
		t.Error("List returned nil slice; callers serialize this as JSON null")
	}
}
