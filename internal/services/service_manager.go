package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hireloop/jobboard-service/internal/auth"
	"github.com/hireloop/jobboard-service/internal/events"
	"github.com/hireloop/jobboard-service/internal/repositories"
	"github.com/hireloop/jobboard-service/internal/validator"
)

// ServiceManagerDeps holds everything the services are built from
type ServiceManagerDeps struct {
	Repo       repositories.Repository
	Logger     *slog.Logger
	Validator  *validator.Validator
	Tokens     *auth.TokenManager
	TokenStore *auth.TokenStore
	Publisher  events.Publisher
}

// serviceManager implements ServiceManager
type serviceManager struct {
	deps ServiceManagerDeps

	authService        AuthService
	userService        UserService
	companyService     CompanyService
	positionService    PositionService
	skillService       SkillService
	applicationService ApplicationService
	testService        TestService
	exportService      ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies
func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.deps.Logger.Info("Initializing service manager")

	repo, logger, v := sm.deps.Repo, sm.deps.Logger, sm.deps.Validator

	sm.authService = NewAuthService(repo, logger, v, sm.deps.Tokens, sm.deps.TokenStore, sm.deps.Publisher)
	sm.userService = NewUserService(repo, logger, v)
	sm.companyService = NewCompanyService(repo, logger, v)
	sm.positionService = NewPositionService(repo, logger, v, sm.deps.Publisher)
	sm.skillService = NewSkillService(repo, logger, v)
	sm.applicationService = NewApplicationService(repo, logger, sm.deps.Publisher)
	sm.testService = NewTestService(repo, logger, v, sm.deps.Publisher)
	sm.exportService = NewExportService(repo, logger)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Company() CompanyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.companyService
}

func (sm *serviceManager) Position() PositionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.positionService
}

func (sm *serviceManager) Skill() SkillService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.skillService
}

func (sm *serviceManager) Application() ApplicationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.applicationService
}

func (sm *serviceManager) Test() TestService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.testService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.exportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}
