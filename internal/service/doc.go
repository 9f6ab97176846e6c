// Package service implements the business logic layer for the payment API.
//
// Services sit between HTTP handlers and storage. Each service defines the
// storage interface it needs, so tests substitute simple fakes.
//
//   - PaymentService: creates and looks up pending payment intents
//   - AuditService: persists transaction audit records through a worker pool
//
// Errors are package-level sentinels in errors.go:
//
//	intent, err := payments.GetIntent(ctx, id)
//	if errors.Is(err, service.ErrIntentNotFound) {
//	    // 404
//	}
package service
