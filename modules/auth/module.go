package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// AuthModule holds the provisioned credential and answers verify requests.
type AuthModule struct {
	creds         Credentials
	cost          int
	authenticator *Authenticator
	logger        types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule for the given account.
func NewModule(creds Credentials, bcryptCost int, logger types.Logger) *AuthModule {
	return &AuthModule{
		creds:  creds,
		cost:   bcryptCost,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start hashes the provisioned password. The plaintext is dropped afterwards.
func (m *AuthModule) Start(_ context.Context) error {
	hasher, err := NewPasswordHasherWithCost(m.cost)
	if err != nil {
		return err
	}

	authenticator, err := NewAuthenticator(m.creds, hasher)
	if err != nil {
		return fmt.Errorf("failed to provision credentials: %w", err)
	}
	m.authenticator = authenticator
	m.creds.Password = ""

	m.logger.Info("Auth module started", "username", authenticator.Username())
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health reports whether the credential has been provisioned.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.authenticator == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "credentials not provisioned",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers the verify service.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceVerify, json.Unmarshal, json.Marshal, m.verify,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceVerify, err)
	}

	m.logger.Info("Registered auth services", "services", []string{ServiceVerify})
	return nil
}

func (m *AuthModule) verify(_ context.Context, req VerifyRequest, _ *mono.Msg) (VerifyResponse, error) {
	if m.authenticator == nil {
		return VerifyResponse{}, errors.New("auth module not started")
	}
	valid := m.authenticator.Verify(req.Username, req.Password)
	if !valid {
		m.logger.Warn("Rejected credentials", "username", req.Username)
	}
	return VerifyResponse{Valid: valid}, nil
}
