// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/odrzavanje/internal/platform/ctxutil"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that verified claims travel with the context and
that anonymous contexts report nil.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{
		UserID:   "user-123",
		Username: "ana",
		Role:     string(sec.RoleAdministrator),
	}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
}

/*
TestContext_ForeignKeysDoNotCollide ensures a plain string key with the same
name as an internal key is invisible to the helpers.
*/
func TestContext_ForeignKeysDoNotCollide(t *testing.T) {
	//nolint:staticcheck // deliberately using a string key
	ctx := context.WithValue(context.Background(), "request_id", "spoofed")

	assert.Empty(t, ctxutil.GetRequestID(ctx))
}
