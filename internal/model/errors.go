package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation         ErrorCode = 4001
	ErrCodeInvalidInput       ErrorCode = 4002
	ErrCodeRateLimited        ErrorCode = 4003
	ErrCodeInvalidAmount      ErrorCode = 4004
	ErrCodeInvalidEmail       ErrorCode = 4005
	ErrCodeUnsupportedGateway ErrorCode = 4006

	// Internal errors (5xxx)
	ErrCodeInternal           ErrorCode = 5001
	ErrCodeDatabase           ErrorCode = 5002
	ErrCodeGatewayUnavailable ErrorCode = 5003
)

// APIError is the JSON envelope for every failed request:
//
//	{"success": false, "error": "<message>", ...extra}
//
// Extra fields are only emitted when set.
type APIError struct {
	Success bool         `json:"success"`
	Message string       `json:"error"`
	Status  int          `json:"-"`
	Code    ErrorCode    `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	// Extension fields
	Missing    []string `json:"missing,omitempty"`
	RetryAfter int64    `json:"retryAfter,omitempty"`
	Min        *int64   `json:"min,omitempty"`
	Max        *int64   `json:"max,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error envelope as JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
	}
}

func NewValidationError(errors []FieldError) *APIError {
	message := "One or more fields failed validation"
	if len(errors) > 0 {
		message = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			message = fmt.Sprintf("%s (and %d more errors)", message, len(errors)-1)
		}
	}
	return &APIError{
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Code:    ErrCodeValidation,
		Errors:  errors,
	}
}

func NewInvalidAmountError(message string, min, max int64) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidAmount,
		Min:     &min,
		Max:     &max,
	}
}

func NewInvalidEmailError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidEmail,
	}
}

func NewUnsupportedGatewayError(gateway string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("unsupported payment gateway: %s", gateway),
		Status:  http.StatusBadRequest,
		Code:    ErrCodeUnsupportedGateway,
	}
}

// NewServiceUnavailableError reports a gateway that cannot take payments
// because server-side configuration is missing. Only key names are listed.
func NewServiceUnavailableError(gateway string, missing []string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("payment gateway %s is not configured", gateway),
		Status:  http.StatusServiceUnavailable,
		Code:    ErrCodeGatewayUnavailable,
		Missing: missing,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Code:    ErrCodeNotFound,
	}
}

func NewConflictError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  http.StatusConflict,
		Code:    ErrCodeConflict,
	}
}

// NewRateLimitError builds a 429 whose retryAfter is expressed in
// milliseconds.
func NewRateLimitError(retryAfterMillis int64) *APIError {
	return &APIError{
		Message:    "too many payment attempts, please try again later",
		Status:     http.StatusTooManyRequests,
		Code:       ErrCodeRateLimited,
		RetryAfter: retryAfterMillis,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &APIError{
		Message: message,
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternal,
	}
}

func NewMethodNotAllowedError(allowed string) *APIError {
	return &APIError{
		Message: fmt.Sprintf("Only %s method is allowed", allowed),
		Status:  http.StatusMethodNotAllowed,
	}
}
