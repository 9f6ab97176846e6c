// Package middleware provides HTTP middleware for the payment API.
//
// # Available Middleware
//
// Request plumbing:
//
//   - RequestID, Logger, Recovery, CORS
//   - RealIP: resolves the client address, optionally from proxy headers
//   - UserFromHeader: trusts the user id set by the upstream auth proxy
//   - Idempotency: replays responses for a repeated Idempotency-Key
//
// Payment guard, applied in this order before a payment is created:
//
//   - auditor.Transaction: one audit record per request, rejections included
//   - PaymentConfigCheck: advisory list of missing gateway variables
//   - Idempotency (optional)
//   - PaymentRateLimit: 5 attempts per client per 15 minutes
//   - RequireGatewayParam: 400 unknown gateway, 503 unconfigured gateway
//   - ValidateAmount: 100 to 50,000,000 CLP, rounded to whole pesos
//   - SanitizePaymentInput: description and payer email
//
// PaymentGuard builds that slice:
//
//	mux.Handle("POST /v1/payments/{gateway}", middleware.Chain(createPayment,
//	    middleware.PaymentGuard(middleware.PaymentGuardConfig{
//	        Payment:     cfg.Payment,
//	        Auditor:     auditor,
//	        Idempotency: idempotencyStore,
//	        Limiter:     limiter,
//	        Recorder:    recorder,
//	    })...,
//	))
//
// Any blocking step writes {"success": false, "error": ...} and stops the
// chain. The JSON body is decoded once; every step reads and normalizes the
// same model.PaymentPayload, so the handler and the audit record see the
// rounded amount and the sanitized description.
//
// # Context Values
//
//   - GetRequestID(ctx), GetUserID(ctx), GetClientIP(r)
//   - GetPaymentPayload(ctx): decoded request body
//   - GetPaymentConfigWarnings(ctx): "gateway: ENV_VAR" advisories
//   - GetGatewayConfig(ctx): configuration of the requested gateway
package middleware
