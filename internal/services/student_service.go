package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/events"
	"github.com/sofia-edu/admin-service/internal/models"
	"github.com/sofia-edu/admin-service/internal/repositories"
	"github.com/sofia-edu/admin-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *studentService) List(ctx context.Context, search, plan string) ([]StudentListItem, error) {
	filters := repositories.StudentFilters{}
	if search != "" {
		filters.Search = &search
	}
	if plan != "" {
		p := models.Plan(plan)
		filters.Plan = &p
	}

	items, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []StudentListItem{}
	}
	return items, nil
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	plan := models.PlanFreemium
	if req.Plan != "" {
		plan = models.Plan(req.Plan)
	}

	student := &models.Student{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Plan:         plan,
		PhotoURL:     req.PhotoURL,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.publish(ctx, events.EventStudentCreated, student.ID)
	s.logger.Info("student created", "student_id", student.ID)

	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) error {
	if req.IsEmpty() {
		return ErrEmptyUpdate
	}
	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["nome"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Plan != nil {
		fields["plano"] = *req.Plan
	}
	if req.PhotoURL != nil {
		fields["url_foto"] = *req.PhotoURL
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fields["senha"] = string(hash)
	}

	rows, err := s.repo.Student().Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	if rows == 0 {
		return ErrStudentNotFound
	}

	s.publish(ctx, events.EventStudentUpdated, id)
	return nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	rows, err := s.repo.Student().Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStudentNotFound
	}

	s.publish(ctx, events.EventStudentDeleted, id)
	s.logger.Info("student deleted", "student_id", id)
	return nil
}

func (s *studentService) Results(ctx context.Context, studentID uint) ([]QuizResultResponse, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	results, err := s.repo.QuizResult().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]QuizResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, QuizResultResponse{
			Topic:          r.Topic,
			CorrectCount:   r.CorrectCount,
			TotalQuestions: r.TotalQuestions,
			CreatedAt:      r.CreatedAt,
		})
	}
	return responses, nil
}

// ExportRoster renders all students with their averages into an .xlsx sheet.
func (s *studentService) ExportRoster(ctx context.Context) ([]byte, error) {
	items, err := s.repo.Student().List(ctx, repositories.StudentFilters{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Alunos"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Nome", "Email", "Plano", "Média Geral", "Média Filosofia", "Média Sociologia"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, item := range items {
		values := []interface{}{
			item.ID,
			item.Name,
			item.Email,
			string(item.Plan),
			formatAverageCell(item.AverageOverall),
			formatAverageCell(item.AveragePhilosophy),
			formatAverageCell(item.AverageSociology),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	return buf.Bytes(), nil
}

func formatAverageCell(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", *avg*100)
}

// publish emits an audit event; failures are logged, never surfaced.
func (s *studentService) publish(ctx context.Context, eventType string, studentID uint) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(eventType, map[string]interface{}{"id_aluno": studentID})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish audit event", "type", eventType, "student_id", studentID, "error", err)
	}
}
