package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/VitaliiEv/t1rest/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TaskModule provides task management services via GORM + SQLite.
type TaskModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string
	dbDebug bool
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule backed by the SQLite file at dbPath.
func NewModule(dbPath string, dbDebug bool, logger types.Logger) *TaskModule {
	return &TaskModule{
		dbPath:  dbPath,
		dbDebug: dbDebug,
		logger:  logger,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.task.".
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceList, json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceList, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdate, json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDelete, json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDelete, err)
	}

	m.logger.Info("Registered task services",
		"services", []string{ServiceList, ServiceCreate, ServiceGet, ServiceUpdate, ServiceDelete})
	return nil
}

// Start opens the database, runs migrations and builds the service.
func (m *TaskModule) Start(_ context.Context) error {
	m.logger.Info("Connecting to SQLite database", "path", m.dbPath)

	db, err := OpenDatabase(m.dbPath, m.dbDebug)
	if err != nil {
		return err
	}
	m.db = db
	m.service = NewService(NewRepository(db))

	m.logger.Info("Task module started")
	return nil
}

// Stop closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Task module stopped")
	return nil
}

// Health pings the database.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// OpenDatabase opens the SQLite database at path and migrates the schema.
// SQLite serializes writers, and every ":memory:" connection is a separate
// database, so the pool is capped at one connection.
func OpenDatabase(path string, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (PageResponse, error) {
	page, err := m.service.ListTasks(ctx, req.Page)
	if err != nil {
		return PageResponse{}, err
	}
	return toPageResponse(page), nil
}

func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.CreateTask(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	m.logger.Info("Task created", "task_id", task.ID)
	return *task, nil
}

func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.UpdateTask(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	m.logger.Info("Task updated", "task_id", task.ID)
	return *task, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.DeleteTask(ctx, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}
	m.logger.Info("Task deleted", "task_id", req.TaskID)
	return DeleteTaskResponse{Deleted: true}, nil
}
