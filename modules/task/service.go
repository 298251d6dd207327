package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/VitaliiEv/t1rest/domain/task"
)

// PageSize is the fixed number of tasks per listing page.
const PageSize = 100

// Service applies the task business rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a new task service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// ListTasks returns the requested page, page 0 when page is nil.
func (s *Service) ListTasks(ctx context.Context, page *int) (*domain.Page, error) {
	number := 0
	if page != nil {
		number = *page
	}
	if number < 0 {
		return nil, fmt.Errorf("%w: page must be non-negative, got %d", domain.ErrInvalidArgument, number)
	}

	var result *domain.Page
	err := s.store.Transaction(ctx, true, func(tx Store) error {
		var err error
		result, err = tx.FindPage(ctx, number, PageSize)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return result, nil
}

// CreateTask stores a new task. DueDate defaults to today and Completed to false.
func (s *Service) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == nil {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if req.Description == nil {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidArgument)
	}
	if err := validateTitle(*req.Title); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       *req.Title,
		Description: *req.Description,
		DueDate:     domain.Today(s.now()),
		Completed:   false,
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	err := s.store.Transaction(ctx, false, func(tx Store) error {
		return tx.Save(ctx, task)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

// GetTask returns the task with the given id or a NotFoundError.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var task *domain.Task
	err := s.store.Transaction(ctx, true, func(tx Store) error {
		var err error
		task, err = tx.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NotFound(id)
	}
	return task, nil
}

// UpdateTask merges the fields present in req into the stored task.
func (s *Service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	var task *domain.Task
	err := s.store.Transaction(ctx, false, func(tx Store) error {
		existing, err := tx.FindByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.NotFound(req.TaskID)
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.DueDate != nil {
			existing.DueDate = *req.DueDate
		}
		if req.Completed != nil {
			existing.Completed = *req.Completed
		}

		if err := tx.Save(ctx, existing); err != nil {
			return err
		}
		task = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task with the given id. The existence check and the
// delete share one write transaction; a delete that finds the row already
// gone affects nothing.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.Transaction(ctx, false, func(tx Store) error {
		exists, err := tx.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NotFound(id)
		}
		return tx.DeleteByID(ctx, id)
	})
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be blank", domain.ErrInvalidArgument)
	}
	return nil
}
