package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sofia-edu/admin-service/internal/ai"
	"github.com/sofia-edu/admin-service/internal/events"
	"github.com/sofia-edu/admin-service/internal/repositories"
	"github.com/sofia-edu/admin-service/internal/sessions"
	"github.com/sofia-edu/admin-service/internal/validator"
)

// ServiceManagerConfig carries the service-level knobs from the runtime
// configuration.
type ServiceManagerConfig struct {
	StatsTimeZone string
	ChatTimeout   time.Duration
}

type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	sessions  *sessions.Store
	publisher events.EventPublisher
	chatModel ai.ChatModel
	config    ServiceManagerConfig

	authService      AuthService
	studentService   StudentService
	dashboardService DashboardService
	chatRegistry     *ChatRegistry

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
// chatModel and publisher may be nil when the corresponding backends are not
// configured; the affected features degrade instead of failing startup.
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	sessionStore *sessions.Store,
	publisher events.EventPublisher,
	chatModel ai.ChatModel,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		sessions:  sessionStore,
		publisher: publisher,
		chatModel: chatModel,
		config:    config,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	sm.authService = NewAuthService(sm.repo, sm.sessions, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator, sm.publisher)

	dashboardService, err := NewDashboardService(sm.repo, sm.logger, sm.config.StatsTimeZone)
	if err != nil {
		return err
	}
	sm.dashboardService = dashboardService

	sm.chatRegistry = NewChatRegistry(sm.chatModel, sm.config.ChatTimeout, sm.logger)
	if sm.chatModel == nil {
		sm.logger.Warn("chat model not configured; chat runs degraded")
	}

	sm.initialized = true
	sm.logger.Info("services initialized")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("failed to close event publisher", "error", err)
		}
	}

	sm.logger.Info("services shut down")
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.studentService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.dashboardService
}

func (sm *serviceManager) Chat() *ChatRegistry {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.chatRegistry
}
