// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// # Password Schemes

// PasswordScheme names the keyed digest used to protect stored passwords.
type PasswordScheme string

const (
	// SchemeHMACSHA512 keys HMAC-SHA-512 with the per-user salt.
	// Rows written by the legacy maintenance system use this layout.
	SchemeHMACSHA512 PasswordScheme = "hmac-sha512"

	// SchemeArgon2id derives the digest with Argon2id (memory-hard).
	SchemeArgon2id PasswordScheme = "argon2id"
)

const (
	// DigestLength is the byte length of every stored password digest.
	DigestLength = 64

	// hmacSaltLength matches the SHA-512 block size, the key length used by the legacy rows.
	hmacSaltLength = 128

	// argon2SaltLength is the recommended 256-bit salt for Argon2id.
	argon2SaltLength = 32

	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("sec: password must not be empty")

// # Credential Hasher

// PasswordHasher turns plaintext passwords into a (digest, salt) pair and
// verifies candidates against a stored pair.
//
// # Concurrency
//
// PasswordHasher holds no mutable state. A single instance is shared by
// every request.
type PasswordHasher struct {
	scheme PasswordScheme
}

// NewPasswordHasher returns a hasher for the given scheme.
// An empty scheme selects [SchemeHMACSHA512].
func NewPasswordHasher(scheme PasswordScheme) (*PasswordHasher, error) {
	switch scheme {
	case "":
		scheme = SchemeHMACSHA512
	case SchemeHMACSHA512, SchemeArgon2id:
	default:
		return nil, &ConfigurationError{Field: "PASSWORD_SCHEME", Reason: fmt.Sprintf("unsupported scheme %q", scheme)}
	}
	return &PasswordHasher{scheme: scheme}, nil
}

// Scheme reports the configured password scheme.
func (hasher *PasswordHasher) Scheme() PasswordScheme {
	return hasher.scheme
}

// SaltLength is the byte length of salts produced and accepted by this hasher.
func (hasher *PasswordHasher) SaltLength() int {
	if hasher.scheme == SchemeArgon2id {
		return argon2SaltLength
	}
	return hmacSaltLength
}

// Hash generates a fresh random salt and returns the digest of password keyed by it.
func (hasher *PasswordHasher) Hash(password string) (digest, salt []byte, err error) {
	if password == "" {
		return nil, nil, ErrEmptyPassword
	}

	salt = make([]byte, hasher.SaltLength())
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	return hasher.digest(password, salt), salt, nil
}

// Verify reports whether password matches the stored digest and salt.
//
// A missing or wrongly sized digest or salt never verifies.
func (hasher *PasswordHasher) Verify(password string, digest, salt []byte) bool {
	if len(digest) != DigestLength || len(salt) != hasher.SaltLength() {
		return false
	}

	return ConstantTimeEqual(hasher.digest(password, salt), digest)
}

// digest computes the scheme-specific keyed digest.
func (hasher *PasswordHasher) digest(password string, salt []byte) []byte {
	if hasher.scheme == SchemeArgon2id {
		return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, DigestLength)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// ConstantTimeEqual compares two byte slices without exiting at the first
// differing byte. Only the length difference short-circuits.
func ConstantTimeEqual(left, right []byte) bool {
	if len(left) != len(right) {
		return false
	}

	var diff byte
	for i := range left {
		diff |= left[i] ^ right[i]
	}
	return diff == 0
}
