package password

import (
	"encoding/hex"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "longenough1",
		},
		{
			name:     "complex password",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "long password",
			password: "this-is-a-very-long-password-that-should-still-work-correctly",
		},
		{
			name:     "unicode password",
			password: "密码12345678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, salt, err := Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if len(hash) != KeyLength*2 {
				t.Errorf("expected %d hex chars of hash, got %d", KeyLength*2, len(hash))
			}
			if len(salt) != SaltLength*2 {
				t.Errorf("expected %d hex chars of salt, got %d", SaltLength*2, len(salt))
			}

			if _, err := hex.DecodeString(hash); err != nil {
				t.Errorf("hash is not valid hex: %v", err)
			}
			if _, err := hex.DecodeString(salt); err != nil {
				t.Errorf("salt is not valid hex: %v", err)
			}

			if !Verify(tt.password, hash, salt) {
				t.Error("Verify() returned false for correct password")
			}
		})
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	hash, salt, err := Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
	}{
		{name: "wrong password", password: "wrong-password"},
		{name: "empty password", password: ""},
		{name: "near miss", password: "correct-password1"},
		{name: "case difference", password: "Correct-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.password, hash, salt) {
				t.Error("Verify() returned true for wrong password")
			}
		})
	}
}

func TestHash_NonDeterministic(t *testing.T) {
	hash1, salt1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, salt2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if salt1 == salt2 {
		t.Error("two calls produced the same salt")
	}
	if hash1 == hash2 {
		t.Error("two calls produced the same hash")
	}
}

func TestVerify_MalformedStoredValues(t *testing.T) {
	hash, salt, err := Hash("some-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name string
		hash string
		salt string
	}{
		{name: "odd-length salt", hash: hash, salt: salt[:len(salt)-1]},
		{name: "non-hex salt", hash: hash, salt: "zz" + salt[2:]},
		{name: "odd-length hash", hash: hash[:len(hash)-1], salt: salt},
		{name: "non-hex hash", hash: "zz" + hash[2:], salt: salt},
		{name: "empty values", hash: "", salt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Malformed stored values must fail closed, not panic or error.
			if Verify("some-password", tt.hash, tt.salt) {
				t.Error("Verify() returned true for malformed stored values")
			}
		})
	}
}
