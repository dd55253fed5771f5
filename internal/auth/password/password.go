package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 iteration count.
	Iterations = 100000
	// SaltLength is the salt size in bytes (128 bits).
	SaltLength = 16
	// KeyLength is the derived key size in bytes (256 bits).
	KeyLength = 32
)

// ErrCryptoFailure is returned when a crypto primitive itself fails, so
// callers can tell a service error apart from a wrong password.
var ErrCryptoFailure = errors.New("password hashing failed")

// Hash derives a PBKDF2-HMAC-SHA256 key from the plaintext with a fresh
// random salt. Both values are returned as lowercase hex strings.
func Hash(plaintext string) (hash string, salt string, err error) {
	saltBytes := make([]byte, SaltLength)
	if _, err := rand.Read(saltBytes); err != nil {
		return "", "", ErrCryptoFailure
	}

	key := pbkdf2.Key([]byte(plaintext), saltBytes, Iterations, KeyLength, sha256.New)

	return hex.EncodeToString(key), hex.EncodeToString(saltBytes), nil
}

// Verify re-derives the key from the plaintext with the stored salt and
// compares it to the stored hash in constant time. Malformed stored values
// (e.g. odd-length hex) are treated as a non-match rather than an error.
func Verify(plaintext, storedHash, storedSalt string) bool {
	saltBytes, err := hex.DecodeString(storedSalt)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(plaintext), saltBytes, Iterations, KeyLength, sha256.New)

	// subtle.ConstantTimeCompare inspects every byte regardless of where a
	// mismatch occurs, so response timing reveals nothing about the password.
	return subtle.ConstantTimeCompare(key, expected) == 1
}
