// Package dto holds the wire shapes shared by every HTTP handler
package dto

import (
	"net/http"

	"github.com/shopmall/backend/internal/domain/shared"
)

// Error codes written in the code field of ErrorResponse
const (
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidReference = "INVALID_REFERENCE"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeAccessDenied     = "ACCESS_DENIED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps codes that are not produced by a domain error kind
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeAccessDenied:    http.StatusForbidden,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// KindHTTPStatus maps domain error kinds to statuses. Not-found stays a client error (400)
// like every other rejected request; only access checks answer 403.
var KindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:         http.StatusBadRequest,
	shared.KindInvalidReference: http.StatusBadRequest,
	shared.KindConflict:         http.StatusBadRequest,
	shared.KindValidation:       http.StatusBadRequest,
	shared.KindAccessDenied:     http.StatusForbidden,
}

// GetHTTPStatus returns the status for code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusForKind returns the status for a domain error kind, defaulting to 500
func StatusForKind(kind shared.ErrorKind) int {
	if status, ok := KindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of every failed request
// @Description Standard error response
type ErrorResponse struct {
	Status    int                `json:"status" example:"400"`
	Message   string             `json:"message" example:"product not found: 42"`
	Code      string             `json:"code" example:"NOT_FOUND"`
	RequestID string             `json:"request_id,omitempty" example:"4f1c0a52-8a8d-4a57-9a77-5b0f3c7de1aa"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field
type ValidationDetail struct {
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"This field is required"`
}

// NewErrorResponse builds an ErrorResponse
func NewErrorResponse(status int, code, message, requestID string) ErrorResponse {
	return ErrorResponse{Status: status, Message: message, Code: code, RequestID: requestID}
}

// NewValidationErrorResponse builds a 400 carrying per-field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   message,
		Code:      ErrCodeValidation,
		RequestID: requestID,
		Details:   details,
	}
}
