// Package requestlog logs every request-reply service call.
package requestlog

import (
	"context"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Middleware implements service call logging as a mono.MiddlewareModule.
// It wraps request-reply handlers at registration time.
type Middleware struct {
	logger types.Logger
	now    func() time.Time
}

// Compile-time interface checks
var _ mono.Module = (*Middleware)(nil)
var _ mono.MiddlewareModule = (*Middleware)(nil)

// New creates a new request logging middleware.
func New(logger types.Logger) *Middleware {
	return &Middleware{
		logger: logger,
		now:    time.Now,
	}
}

// Name returns the middleware name.
func (m *Middleware) Name() string {
	return "request-log"
}

// Start implements mono.Module.
func (m *Middleware) Start(_ context.Context) error {
	m.logger.Info("Request logging middleware started")
	return nil
}

// Stop implements mono.Module.
func (m *Middleware) Stop(_ context.Context) error {
	m.logger.Info("Request logging middleware stopped")
	return nil
}

// OnModuleLifecycle passes through module lifecycle events unchanged.
func (m *Middleware) OnModuleLifecycle(
	_ context.Context,
	event types.ModuleLifecycleEvent,
) types.ModuleLifecycleEvent {
	return event
}

// OnServiceRegistration wraps request-reply handlers with timing and error logging.
func (m *Middleware) OnServiceRegistration(
	_ context.Context,
	reg types.ServiceRegistration,
) types.ServiceRegistration {
	if reg.Type != types.ServiceTypeRequestReply || reg.RequestHandler == nil {
		return reg
	}

	serviceName := reg.Name
	original := reg.RequestHandler

	reg.RequestHandler = func(ctx context.Context, req *types.Msg) ([]byte, error) {
		start := m.now()
		resp, err := original(ctx, req)
		elapsed := m.now().Sub(start)

		if err != nil {
			m.logger.Warn("Service call failed",
				"service", serviceName,
				"duration", elapsed,
				"error", err)
			return resp, err
		}

		m.logger.Debug("Service call handled",
			"service", serviceName,
			"duration", elapsed,
			"response_bytes", len(resp))
		return resp, nil
	}

	m.logger.Debug("Wrapping service with request logging", "service", serviceName)
	return reg
}

// OnConfigurationChange passes through configuration changes unchanged.
func (m *Middleware) OnConfigurationChange(
	_ context.Context,
	event types.ConfigurationEvent,
) types.ConfigurationEvent {
	return event
}

// OnOutgoingMessage passes through outgoing messages unchanged.
func (m *Middleware) OnOutgoingMessage(
	octx types.OutgoingMessageContext,
) types.OutgoingMessageContext {
	return octx
}

// OnEventConsumerRegistration passes through event consumer registrations unchanged.
func (m *Middleware) OnEventConsumerRegistration(
	_ context.Context,
	entry types.EventConsumerEntry,
) types.EventConsumerEntry {
	return entry
}

// OnEventStreamConsumerRegistration passes through event stream consumer registrations unchanged.
func (m *Middleware) OnEventStreamConsumerRegistration(
	_ context.Context,
	entry types.EventStreamConsumerEntry,
) types.EventStreamConsumerEntry {
	return entry
}
