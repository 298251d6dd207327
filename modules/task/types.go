package task

import (
	"context"

	domain "github.com/VitaliiEv/t1rest/domain/task"
)

// Service names registered by the task module.
const (
	ServiceList   = "list"
	ServiceCreate = "create"
	ServiceGet    = "get"
	ServiceUpdate = "update"
	ServiceDelete = "delete"
)

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct {
	Page *int `json:"page,omitempty"`
}

// PageResponse is one page of tasks with its totals.
type PageResponse struct {
	Tasks         []domain.Task `json:"tasks"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"total_elements"`
	TotalPages    int           `json:"total_pages"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
}

// CreateTaskRequest is the request for creating a task.
// Nil fields were absent from the client request.
type CreateTaskRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	DueDate     *domain.Date `json:"dueDate,omitempty"`
	Completed   *bool        `json:"completed,omitempty"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for a partial update of a task.
type UpdateTaskRequest struct {
	TaskID      string       `json:"task_id"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	DueDate     *domain.Date `json:"dueDate,omitempty"`
	Completed   *bool        `json:"completed,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the task module.
type TaskPort interface {
	ListTasks(ctx context.Context, page *int) (*PageResponse, error)
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}

func toPageResponse(page *domain.Page) PageResponse {
	tasks := page.Items
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return PageResponse{
		Tasks:         tasks,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First(),
		Last:          page.Last(),
	}
}
