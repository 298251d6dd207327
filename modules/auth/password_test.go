package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Hash(t *testing.T) {
	hasher, err := NewPasswordHasherWithCost(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasherWithCost() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "default credential",
			password: "admin",
		},
		{
			name:     "complex password",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "密码123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == "" || hash == tt.password {
				t.Errorf("Hash() = %q, want a bcrypt hash", hash)
			}
			if !hasher.Verify(tt.password, hash) {
				t.Error("Verify() returned false for correct password")
			}
			if hasher.Verify(tt.password+"x", hash) {
				t.Error("Verify() returned true for wrong password")
			}
		})
	}
}

func TestPasswordHasher_DefaultCost(t *testing.T) {
	hasher := NewPasswordHasher()
	hash, err := hasher.Hash("admin")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Errorf("cost = %d, want %d", cost, DefaultBcryptCost)
	}
}

func TestNewPasswordHasherWithCost_Range(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost - 1, bcrypt.MaxCost + 1} {
		if _, err := NewPasswordHasherWithCost(cost); err == nil {
			t.Errorf("NewPasswordHasherWithCost(%d) expected error", cost)
		}
	}
}
