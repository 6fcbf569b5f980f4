// Copyright (c) 2026 Socio. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
	}{
		{"not_found", apperr.NotFound("Post"), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("Token expired"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("No access"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", apperr.Conflict("Email taken"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestNotFound_MessageIncludesResource(t *testing.T) {
	assert.Equal(t, "Post not found", apperr.NotFound("Post").Error())
}

func TestInternal_CauseIsHidden(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	// The client-safe message never leaks the cause.
	assert.NotContains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestValidationError_Details(t *testing.T) {
	err := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "email", Message: "Email is required"},
	)

	require.Len(t, err.Details, 1)
	assert.Equal(t, "email", err.Details[0].Field)
}

func TestAs_TraversesWrappedChain(t *testing.T) {
	inner := apperr.Conflict("Email taken")
	wrapped := fmt.Errorf("create user: %w", inner)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	assert.True(t, apperr.IsAppError(wrapped))
	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(errors.New("plain")))
}
