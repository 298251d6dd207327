package api

import (
	domain "github.com/VitaliiEv/t1rest/domain/task"
)

// TaskRequest is the HTTP body of both create and update requests.
// A nil field was absent (or null) in the JSON body.
type TaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	DueDate     *domain.Date `json:"dueDate"`
	Completed   *bool        `json:"completed"`
}

// PageResponse is the HTTP response for listing tasks.
type PageResponse struct {
	Content          []domain.Task `json:"content"`
	TotalElements    int64         `json:"totalElements"`
	TotalPages       int           `json:"totalPages"`
	Size             int           `json:"size"`
	Number           int           `json:"number"`
	NumberOfElements int           `json:"numberOfElements"`
	First            bool          `json:"first"`
	Last             bool          `json:"last"`
	Empty            bool          `json:"empty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for health checks.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
