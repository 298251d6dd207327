package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/VitaliiEv/t1rest/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the data-access port of the task service.
type Store interface {
	// Save inserts task when its ID is empty, generating one, and updates
	// the existing row otherwise. task holds the persisted state on return.
	Save(ctx context.Context, task *domain.Task) error
	// FindByID returns nil with a nil error when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// DeleteByID is a no-op when the row is already gone.
	DeleteByID(ctx context.Context, id string) error
	FindPage(ctx context.Context, page, size int) (*domain.Page, error)
	// Transaction runs fn against a Store bound to a single transaction.
	Transaction(ctx context.Context, readOnly bool, fn func(tx Store) error) error
}

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save creates or updates a task.
func (r *Repository) Save(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
		if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// ExistsByID reports whether a task with the given ID exists.
func (r *Repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}

// DeleteByID removes a task by ID.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// FindPage returns the zero-indexed page of tasks in insertion order.
func (r *Repository) FindPage(ctx context.Context, page, size int) (*domain.Page, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page %d size %d", domain.ErrInvalidArgument, page, size)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	// Pages at or past totalPages are empty. Skipping the query also keeps
	// page*size from overflowing for huge page numbers.
	items := make([]domain.Task, 0)
	if page < totalPages {
		if err := r.db.WithContext(ctx).
			Order("created_at ASC, id ASC").
			Offset(page * size).
			Limit(size).
			Find(&items).Error; err != nil {
			return nil, fmt.Errorf("failed to find tasks: %w", err)
		}
	}

	return &domain.Page{
		Items:         items,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Transaction runs fn inside a database transaction. Read-only transactions
// are requested with sql.TxOptions so concurrent readers do not take the
// write lock.
func (r *Repository) Transaction(ctx context.Context, readOnly bool, fn func(tx Store) error) error {
	var opts []*sql.TxOptions
	if readOnly {
		opts = append(opts, &sql.TxOptions{ReadOnly: true})
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	}, opts...)
}
