package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// Credentials is the single account allowed to use the API.
type Credentials struct {
	Username string
	Password string
}

// Authenticator verifies a username/password pair against one provisioned
// account. Only the bcrypt hash of the password is kept.
type Authenticator struct {
	username     string
	passwordHash string
	hasher       *PasswordHasher
}

// NewAuthenticator hashes creds.Password and returns an Authenticator for creds.
func NewAuthenticator(creds Credentials, hasher *PasswordHasher) (*Authenticator, error) {
	if creds.Username == "" {
		return nil, errors.New("username is required")
	}
	if creds.Password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &Authenticator{
		username:     creds.Username,
		passwordHash: hash,
		hasher:       hasher,
	}, nil
}

// Verify reports whether username and password match the provisioned account.
func (a *Authenticator) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// Run bcrypt even on a username mismatch so both paths cost the same.
	passOK := a.hasher.Verify(password, a.passwordHash)
	return userOK && passOK
}

// Username returns the provisioned username.
func (a *Authenticator) Username() string {
	return a.username
}
