package dto

import (
	"net/http"
	"testing"

	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind shared.ErrorKind
		want int
	}{
		{shared.KindNotFound, http.StatusBadRequest},
		{shared.KindInvalidReference, http.StatusBadRequest},
		{shared.KindConflict, http.StatusBadRequest},
		{shared.KindValidation, http.StatusBadRequest},
		{shared.KindAccessDenied, http.StatusForbidden},
		{"", http.StatusInternalServerError},
		{"something_else", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForKind(tt.kind))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusRequestEntityTooLarge, GetHTTPStatus(ErrCodeRequestTooLarge))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{{Field: "name", Message: "This field is required"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, ErrCodeValidation, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Len(t, resp.Details, 1)
}
