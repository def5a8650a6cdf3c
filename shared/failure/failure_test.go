package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotelier/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("No valid fields to update."),
			wantCode: http.StatusBadRequest,
			wantMsg:  "No valid fields to update.",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("Unauthorized"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Unauthorized",
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("Forbidden: Admin access required"),
			wantCode: http.StatusForbidden,
			wantMsg:  "Forbidden: Admin access required",
		},
		{
			name:     "not found",
			err:      failure.NotFound("Room not found."),
			wantCode: http.StatusNotFound,
			wantMsg:  "Room not found.",
		},
		{
			name:     "internal from string",
			err:      failure.InternalFromString("Unable to load rooms."),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Unable to load rooms.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestValidationErrors(t *testing.T) {
	err := failure.ValidationErrors([]string{
		"Room name is required.",
		"Nightly rate must be a positive number.",
	})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	var validation *failure.Validation
	assert.True(t, errors.As(err, &validation))
	assert.Len(t, validation.Messages, 2)
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("driver: bad connection")))
}

func TestGetCodeUnwrapsWrappedFailure(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", failure.NotFound("Room not found."))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}
