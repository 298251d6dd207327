package api

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	domain "github.com/VitaliiEv/t1rest/domain/task"
	"github.com/VitaliiEv/t1rest/modules/task"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	tasks := app.Group("/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// listTasks handles GET /tasks?page=N.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	var page *int
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return validationError(c, "Page must be an integer")
		}
		if n < 0 {
			return validationError(c, "Page must be greater than or equal to 0")
		}
		if n > math.MaxInt32 {
			return validationError(c, "Page must be a 32-bit integer")
		}
		page = &n
	}

	resp, err := m.taskAdapter.ListTasks(c.UserContext(), page)
	if err != nil {
		return m.writeServiceError(c, err)
	}

	content := resp.Tasks
	if content == nil {
		content = []domain.Task{}
	}
	return c.JSON(PageResponse{
		Content:          content,
		TotalElements:    resp.TotalElements,
		TotalPages:       resp.TotalPages,
		Size:             resp.Size,
		Number:           resp.Number,
		NumberOfElements: len(content),
		First:            resp.First,
		Last:             resp.Last,
		Empty:            len(content) == 0,
	})
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req TaskRequest
	if ok, err := parseTaskBody(c, &req); !ok {
		return err
	}

	if req.Title == nil {
		return validationError(c, "Title is required")
	}
	if req.Description == nil {
		return validationError(c, "Description is required")
	}

	created, err := m.taskAdapter.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		return m.writeServiceError(c, err)
	}

	return c.JSON(created)
}

// getTask handles GET /tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	taskID, ok := parseTaskID(c)
	if !ok {
		return validationError(c, "Task ID must be a UUID")
	}

	found, err := m.taskAdapter.GetTask(c.UserContext(), taskID)
	if err != nil {
		return m.writeServiceError(c, err)
	}

	return c.JSON(found)
}

// updateTask handles PUT /tasks/:id.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	taskID, ok := parseTaskID(c)
	if !ok {
		return validationError(c, "Task ID must be a UUID")
	}

	var req TaskRequest
	if ok, err := parseTaskBody(c, &req); !ok {
		return err
	}

	updated, err := m.taskAdapter.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		return m.writeServiceError(c, err)
	}

	return c.JSON(updated)
}

// deleteTask handles DELETE /tasks/:id. Success has an empty body.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	taskID, ok := parseTaskID(c)
	if !ok {
		return validationError(c, "Task ID must be a UUID")
	}

	if err := m.taskAdapter.DeleteTask(c.UserContext(), taskID); err != nil {
		return m.writeServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).Send(nil)
}

// parseTaskID returns the canonical form of the :id path parameter.
func parseTaskID(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// parseTaskBody decodes a JSON task body. An empty body is rejected, while
// "{}" decodes to a request with every field absent. JSON null and other
// non-object bodies are rejected. When ok is false the
// response has already been written and err is the result of writing it.
func parseTaskBody(c *fiber.Ctx, req *TaskRequest) (ok bool, err error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return false, validationError(c, "Request body is required")
	}
	if !c.Is("json") {
		return false, c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
			Error:   "unsupported_media_type",
			Message: "Content-Type must be application/json",
		})
	}
	if body[0] != '{' {
		return false, validationError(c, "Request body must be a JSON object")
	}
	if err := c.BodyParser(req); err != nil {
		return false, validationError(c, "Malformed request body: "+err.Error())
	}
	return true, nil
}

func validationError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: message,
	})
}

// writeServiceError maps a task port error to an HTTP response.
func (m *APIModule) writeServiceError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case errors.Is(err, domain.ErrInvalidArgument):
		return validationError(c, err.Error())
	default:
		m.logger.Error("Task service call failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "server_error",
			Message: "Internal Server Error",
		})
	}
}
