// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/odrzavanje/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", apperr.NotFound("User"), apperr.CodeNotFound, http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("no"), apperr.CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("no"), apperr.CodeForbidden, http.StatusForbidden},
		{"conflict", apperr.Conflict("taken"), apperr.CodeConflict, http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{"rate limited", apperr.RateLimited(5), apperr.CodeRateLimited, http.StatusTooManyRequests},
		{"internal", apperr.Internal(errors.New("x")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "User not found", apperr.NotFound("User").Error())
}

/*
TestAs_FindsWrappedError ensures an AppError is still found after service
layers wrap it with context.
*/
func TestAs_FindsWrappedError(t *testing.T) {
	conflict := apperr.Conflict("Username is already taken")
	wrapped := fmt.Errorf("auth_service_register_failed: %w", conflict)

	require.True(t, apperr.IsAppError(wrapped))
	assert.Same(t, conflict, apperr.As(wrapped))

	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestInternal_UnwrapsToCause(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := apperr.Internal(cause)

	require.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "pool exhausted")
}
