package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "nil", err: nil},
		{name: "validation", err: NewValidationError("bad", nil), wantCode: "VALIDATION_FAILED", wantStatus: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", NewNotFound("staff member", nil)), wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "confirmation", err: NewConfirmationRequired("confirm", nil), wantCode: "CONFIRMATION_REQUIRED", wantStatus: http.StatusPreconditionRequired},
		{name: "plain error", err: errors.New("boom"), wantCode: "INTERNAL_ERROR", wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
		})
	}
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: disk full", err.Error())
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(fmt.Errorf("x: %w", NewConflict("dup", nil)), "CONFLICT"))
	assert.False(t, IsCode(errors.New("x"), "CONFLICT"))
}

func TestFromStatus(t *testing.T) {
	de := FromStatus(http.StatusNotFound, "Cannot GET /nope")
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = FromStatus(http.StatusTeapot, "teapot")
	assert.Equal(t, "REQUEST_FAILED", de.Code)
}
