package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// VerifyCredentials checks a username/password pair via the verify service.
func (a *AuthAdapter) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	req := VerifyRequest{Username: username, Password: password}
	var resp VerifyResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceVerify,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("verify request failed: %w", err)
	}

	return resp.Valid, nil
}
