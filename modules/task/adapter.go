package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/VitaliiEv/t1rest/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// It is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer of the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// ListTasks fetches one page of tasks via the list service.
func (a *taskAdapter) ListTasks(ctx context.Context, page *int) (*PageResponse, error) {
	req := ListTasksRequest{Page: page}
	var resp PageResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceList,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err, "")
	}
	return &resp, nil
}

// CreateTask creates a new task via the create service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err, "")
	}
	return &resp, nil
}

// GetTask retrieves a task by ID via the get service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp domain.Task
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err, taskID)
	}
	return &resp, nil
}

// UpdateTask applies a partial update via the update service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err, req.TaskID)
	}
	return &resp, nil
}

// DeleteTask deletes a task via the delete service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID string) error {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDelete,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(err, taskID)
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %s", taskID)
	}
	return nil
}

// mapServiceError maps error messages that crossed the service bus back
// to domain errors. Only the message survives the trip.
func mapServiceError(err error, taskID string) error {
	if err == nil {
		return nil
	}

	msg := err.Error()

	// Bus failures such as "service not found" must not turn into a 404.
	if taskID != "" && strings.Contains(msg, domain.NotFound(taskID).Error()) {
		return domain.NotFound(taskID)
	}
	// Keep the detail after the sentinel text, e.g. ": page must be non-negative".
	sentinel := domain.ErrInvalidArgument.Error()
	if idx := strings.Index(msg, sentinel); idx >= 0 {
		return fmt.Errorf("%w%s", domain.ErrInvalidArgument, msg[idx+len(sentinel):])
	}

	return fmt.Errorf("task service call failed: %w", err)
}
