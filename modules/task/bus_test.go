package task

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/VitaliiEv/t1rest/domain/task"
	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientModule depends on the task module and keeps the adapter built from
// the container it receives, the same way the api module does.
type clientModule struct {
	port TaskPort
}

var _ mono.DependentModule = (*clientModule)(nil)

func (m *clientModule) Name() string { return "task-client" }
func (m *clientModule) Start(_ context.Context) error { return nil }
func (m *clientModule) Stop(_ context.Context) error { return nil }
func (m *clientModule) Dependencies() []string { return []string{"task"} }
func (m *clientModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.port = NewTaskAdapter(container)
	}
}

// startBusApp runs the task module inside a mono application with embedded
// NATS and returns a TaskPort that goes through the request-reply services.
func startBusApp(t *testing.T) TaskPort {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	client := &clientModule{}
	require.NoError(t, app.Register(NewModule(filepath.Join(t.TempDir(), "tasks.db"), false, &mockLogger{})))
	require.NoError(t, app.Register(client))

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	require.NotNil(t, client.port, "dependency container was not delivered")
	return client.port
}

func TestTaskAdapter_OverServiceBus(t *testing.T) {
	port := startBusApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	title, description := "write report", "quarterly numbers"
	due := domain.NewDate(2024, time.March, 15)
	created, err := port.CreateTask(ctx, &CreateTaskRequest{
		Title:       &title,
		Description: &description,
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, title, created.Title)
	assert.Equal(t, "2024-03-15", created.DueDate.String())
	assert.False(t, created.Completed)

	got, err := port.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, description, got.Description)
	assert.Equal(t, "2024-03-15", got.DueDate.String())

	completed := true
	updated, err := port.UpdateTask(ctx, &UpdateTaskRequest{TaskID: created.ID, Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "2024-03-15", updated.DueDate.String())

	page, err := port.ListTasks(ctx, nil)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, created.ID, page.Tasks[0].ID)
	assert.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, PageSize, page.Size)
	assert.True(t, page.First)
	assert.True(t, page.Last)

	require.NoError(t, port.DeleteTask(ctx, created.ID))

	_, err = port.GetTask(ctx, created.ID)
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, created.ID, notFound.ID)
	assert.Equal(t, "Task with id ["+created.ID+"] not found", notFound.Error())

	err = port.DeleteTask(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)

	negative := -1
	_, err = port.ListTasks(ctx, &negative)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "got %v", err)

	_, err = port.CreateTask(ctx, &CreateTaskRequest{Description: &description})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "got %v", err)
}
