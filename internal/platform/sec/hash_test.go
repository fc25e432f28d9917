// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

var schemes = []sec.PasswordScheme{sec.SchemeHMACSHA512, sec.SchemeArgon2id}

func newHasher(t *testing.T, scheme sec.PasswordScheme) *sec.PasswordHasher {
	t.Helper()
	hasher, err := sec.NewPasswordHasher(scheme)
	require.NoError(t, err)
	return hasher
}

/*
TestPasswordHasher_RoundTrip verifies that a password always verifies against its own digest.
*/
func TestPasswordHasher_RoundTrip(t *testing.T) {
	passwords := []string{"Secret123", "x", "lozinka sa razmacima", "šđčćž-ünïcödé", string(bytes.Repeat([]byte("a"), 4096))}

	for _, scheme := range schemes {
		t.Run(string(scheme), func(t *testing.T) {
			hasher := newHasher(t, scheme)

			for _, password := range passwords {
				digest, salt, err := hasher.Hash(password)
				require.NoError(t, err)

				assert.Len(t, digest, sec.DigestLength)
				assert.Len(t, salt, hasher.SaltLength())
				assert.True(t, hasher.Verify(password, digest, salt))
			}
		})
	}
}

/*
TestPasswordHasher_WrongPassword checks that a different password never verifies.
*/
func TestPasswordHasher_WrongPassword(t *testing.T) {
	for _, scheme := range schemes {
		t.Run(string(scheme), func(t *testing.T) {
			hasher := newHasher(t, scheme)

			digest, salt, err := hasher.Hash("Secret123")
			require.NoError(t, err)

			assert.False(t, hasher.Verify("secret123", digest, salt))
			assert.False(t, hasher.Verify("Secret1234", digest, salt))
			assert.False(t, hasher.Verify("wrong", digest, salt))
		})
	}
}

/*
TestPasswordHasher_FreshSalt ensures that hashing the same password twice never reuses a salt.
*/
func TestPasswordHasher_FreshSalt(t *testing.T) {
	hasher := newHasher(t, sec.SchemeHMACSHA512)

	digestA, saltA, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	digestB, saltB, err := hasher.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, saltA, saltB)
	assert.NotEqual(t, digestA, digestB)

	// Each digest only verifies with its own salt.
	assert.False(t, hasher.Verify("Secret123", digestA, saltB))
}

/*
TestPasswordHasher_EmptyPassword rejects empty input at hash time.
*/
func TestPasswordHasher_EmptyPassword(t *testing.T) {
	hasher := newHasher(t, sec.SchemeHMACSHA512)

	_, _, err := hasher.Hash("")
	assert.ErrorIs(t, err, sec.ErrEmptyPassword)
}

/*
TestPasswordHasher_MalformedCredential checks that absent or wrongly sized material fails closed.
*/
func TestPasswordHasher_MalformedCredential(t *testing.T) {
	hasher := newHasher(t, sec.SchemeHMACSHA512)

	digest, salt, err := hasher.Hash("Secret123")
	require.NoError(t, err)

	tests := []struct {
		name   string
		digest []byte
		salt   []byte
	}{
		{"nil_digest", nil, salt},
		{"nil_salt", digest, nil},
		{"both_nil", nil, nil},
		{"short_digest", digest[:32], salt},
		{"short_salt", digest, salt[:64]},
		{"long_digest", append(append([]byte{}, digest...), 0), salt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("Secret123", tt.digest, tt.salt))
		})
	}
}

/*
TestPasswordHasher_LegacyLayout checks that digests are HMAC-SHA-512 keyed by the salt,
so rows written by the previous system keep verifying.
*/
func TestPasswordHasher_LegacyLayout(t *testing.T) {
	hasher := newHasher(t, sec.SchemeHMACSHA512)

	salt := bytes.Repeat([]byte{0x5a}, 128)
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte("Secret123"))
	legacyDigest := mac.Sum(nil)

	assert.True(t, hasher.Verify("Secret123", legacyDigest, salt))
}

/*
TestPasswordHasher_Concurrent hashes and verifies from many goroutines on one instance.
*/
func TestPasswordHasher_Concurrent(t *testing.T) {
	hasher := newHasher(t, sec.SchemeHMACSHA512)

	var wg sync.WaitGroup
	failures := make(chan string, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			password := string(rune('a'+n%26)) + "-password"
			digest, salt, err := hasher.Hash(password)
			if err != nil || !hasher.Verify(password, digest, salt) {
				failures <- password
			}
		}(i)
	}
	wg.Wait()
	close(failures)

	assert.Empty(t, failures)
}

/*
TestNewPasswordHasher_Scheme validates scheme selection.
*/
func TestNewPasswordHasher_Scheme(t *testing.T) {
	hasher, err := sec.NewPasswordHasher("")
	require.NoError(t, err)
	assert.Equal(t, sec.SchemeHMACSHA512, hasher.Scheme())

	_, err = sec.NewPasswordHasher("md5")
	var configErr *sec.ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

/*
TestConstantTimeEqual agrees with bytes.Equal for every mismatch position.
*/
func TestConstantTimeEqual(t *testing.T) {
	base := bytes.Repeat([]byte{0xab}, 64)

	assert.True(t, sec.ConstantTimeEqual(base, append([]byte{}, base...)))
	assert.True(t, sec.ConstantTimeEqual(nil, []byte{}))
	assert.False(t, sec.ConstantTimeEqual(base, base[:63]))

	for position := range base {
		other := append([]byte{}, base...)
		other[position] ^= 0x01
		assert.Equal(t, bytes.Equal(base, other), sec.ConstantTimeEqual(base, other), "position %d", position)
	}
}
