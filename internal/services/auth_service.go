package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sofia-edu/admin-service/internal/repositories"
	"github.com/sofia-edu/admin-service/internal/sessions"
	"github.com/sofia-edu/admin-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  *sessions.Store
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, sessionStore *sessions.Store, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessionStore,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Login(ctx context.Context, req *AdminLoginRequest) (*AdminResponse, string, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, "", errs
	}

	admin, err := s.repo.Admin().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, sessions.Session{
		AdminID:   admin.ID,
		AdminName: admin.Name,
		Email:     admin.Email,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open admin session: %w", err)
	}

	s.logger.Info("admin logged in", "admin_id", admin.ID)

	return &AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *authService) Check(ctx context.Context, token string) (*AdminResponse, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}

	return &AdminResponse{ID: session.AdminID, Name: session.AdminName, Email: session.Email}, nil
}
