package requestlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger implements types.Logger and keeps every entry.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *recordingLogger) With(_ ...any) types.Logger {
	return l
}
func (l *recordingLogger) WithModule(_ string) types.Logger {
	return l
}
func (l *recordingLogger) WithError(_ error) types.Logger {
	return l
}

func (l *recordingLogger) find(level, msg string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

func TestMiddleware_Name(t *testing.T) {
	m := New(&recordingLogger{})
	if name := m.Name(); name != "request-log" {
		t.Errorf("Name() = %q, want 'request-log'", name)
	}
}

func TestMiddleware_StartStop(t *testing.T) {
	m := New(&recordingLogger{})
	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop(context.Background()))
}

func TestOnServiceRegistration_SkipsNonRequestReply(t *testing.T) {
	m := New(&recordingLogger{})

	reg := types.ServiceRegistration{
		Name: "test.service",
		Type: types.ServiceTypeChannel,
	}
	result := m.OnServiceRegistration(context.Background(), reg)
	assert.Nil(t, result.RequestHandler)

	reg = types.ServiceRegistration{
		Name:           "test.service",
		Type:           types.ServiceTypeRequestReply,
		RequestHandler: nil,
	}
	result = m.OnServiceRegistration(context.Background(), reg)
	assert.Nil(t, result.RequestHandler, "nil handler must not be wrapped")
}

func TestOnServiceRegistration_LogsSuccess(t *testing.T) {
	logger := &recordingLogger{}
	m := New(logger)

	ticks := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, int(25*time.Millisecond), time.UTC),
	}
	m.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	reg := types.ServiceRegistration{
		Name: "get",
		Type: types.ServiceTypeRequestReply,
		RequestHandler: func(_ context.Context, _ *types.Msg) ([]byte, error) {
			return []byte(`{"id":"1"}`), nil
		},
	}

	wrapped := m.OnServiceRegistration(context.Background(), reg)
	require.NotNil(t, wrapped.RequestHandler)

	resp, err := wrapped.RequestHandler(context.Background(), &types.Msg{})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(resp))

	entry, ok := logger.find("debug", "Service call handled")
	require.True(t, ok, "success should be logged at debug")
	assert.Contains(t, entry.args, "get")
	assert.Contains(t, entry.args, 25*time.Millisecond)
}

func TestOnServiceRegistration_LogsFailure(t *testing.T) {
	logger := &recordingLogger{}
	m := New(logger)
	errBoom := errors.New("Task with id [x] not found")

	reg := types.ServiceRegistration{
		Name: "delete",
		Type: types.ServiceTypeRequestReply,
		RequestHandler: func(_ context.Context, _ *types.Msg) ([]byte, error) {
			return nil, errBoom
		},
	}

	wrapped := m.OnServiceRegistration(context.Background(), reg)
	_, err := wrapped.RequestHandler(context.Background(), &types.Msg{})
	assert.ErrorIs(t, err, errBoom, "handler error must pass through unchanged")

	entry, ok := logger.find("warn", "Service call failed")
	require.True(t, ok, "failure should be logged at warn")
	assert.Contains(t, entry.args, "delete")
	assert.Contains(t, entry.args, errBoom)
}
