package auth

import "context"

// ServiceVerify is the request-reply service checking a credential pair.
const ServiceVerify = "verify"

// VerifyRequest is the request for verifying credentials.
type VerifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyResponse is the response for verifying credentials.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)
}
