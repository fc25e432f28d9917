// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func stubTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:   "cli-test-secret",
		Issuer:   "odrzavanje",
		Audience: "odrzavanje-clients",
	})
	require.NoError(t, err)

	original := newTokenService
	newTokenService = func() (*sec.TokenService, error) { return service, nil }
	t.Cleanup(func() { newTokenService = original })

	return service
}

/*
TestHashThenVerify ensures the digest and salt printed by hash are accepted by
verify for the same password and rejected for another.
*/
func TestHashThenVerify(t *testing.T) {
	out, err := run(t, "hash", "--password", "Sifra123", "-o", "json")
	require.NoError(t, err)

	var hashed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &hashed))
	assert.Equal(t, string(sec.SchemeHMACSHA512), hashed["scheme"])
	assert.Len(t, hashed["digest"], sec.DigestLength*2)

	_, err = run(t, "verify", "--password", "Sifra123", "--digest", hashed["digest"], "--salt", hashed["salt"])
	require.NoError(t, err)

	out, err = run(t, "verify", "--password", "pogresna", "--digest", hashed["digest"], "--salt", hashed["salt"])
	require.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "false")
}

func TestVerify_BadHex(t *testing.T) {
	_, err := run(t, "verify", "--password", "x", "--digest", "zz", "--salt", "00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--digest")
}

/*
TestHash_PromptsWhenFlagMissing ensures the password is read through the
terminal seam when --password is not given.
*/
func TestHash_PromptsWhenFlagMissing(t *testing.T) {
	original := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("from-terminal"), nil }
	t.Cleanup(func() { readPassword = original })

	out, err := run(t, "hash", "--scheme", string(sec.SchemeArgon2id))
	require.NoError(t, err)
	assert.Contains(t, out, string(sec.SchemeArgon2id))
}

func TestHash_PromptFailure(t *testing.T) {
	original := readPassword
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	t.Cleanup(func() { readPassword = original })

	_, err := run(t, "hash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

func TestHash_UnknownScheme(t *testing.T) {
	_, err := run(t, "hash", "--scheme", "md5", "--password", "x")

	var cfgErr *sec.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

/*
TestTokenIssueAndInspect ensures an issued token round-trips through inspect
and that --level 1 yields the administrator role.
*/
func TestTokenIssueAndInspect(t *testing.T) {
	stubTokenService(t)

	out, err := run(t, "token", "issue", "--id", "42", "--username", "ana", "--level", "1", "-o", "json")
	require.NoError(t, err)

	var issued map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &issued))
	assert.Equal(t, string(sec.RoleAdministrator), issued["role"])

	expiresAt, err := time.Parse(time.RFC3339, issued["expires_at"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sec.DefaultTokenTTL), expiresAt, time.Minute)

	out, err = run(t, "token", "inspect", issued["token"], "-o", "json")
	require.NoError(t, err)

	var claims map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &claims))
	assert.Equal(t, "42", claims["id"])
	assert.Equal(t, "ana", claims["username"])
	assert.Equal(t, string(sec.RoleAdministrator), claims["role"])
}

func TestTokenIssue_NoLevelIsUser(t *testing.T) {
	stubTokenService(t)

	out, err := run(t, "token", "issue", "--id", "7", "--username", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, string(sec.RoleUser))
}

func TestTokenInspect_RejectsGarbage(t *testing.T) {
	stubTokenService(t)

	_, err := run(t, "token", "inspect", "not.a.token")
	require.ErrorIs(t, err, sec.ErrInvalidToken)
}

func TestPrintFields_UnknownFormat(t *testing.T) {
	err := printFields(&bytes.Buffer{}, "yaml", field{"k", "v"})
	require.Error(t, err)
}
