package service

import "errors"

// Service layer errors. Handlers map these to HTTP responses in
// handler.MapServiceError.

// ===== Payment Intent Errors =====
var (
	ErrIntentNotFound        = errors.New("payment intent not found")
	ErrUnsupportedGateway    = errors.New("unsupported payment gateway")
	ErrAmountOutOfRange      = errors.New("amount out of range")
	ErrDescriptionTooLong    = errors.New("description exceeds maximum length")
	ErrPaymentIntentIDNeeded = errors.New("payment intent id is required")
)

// ===== Audit Errors =====
var (
	ErrAuditQueueFull = errors.New("audit queue full")
)
