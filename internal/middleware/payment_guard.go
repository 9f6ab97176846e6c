package middleware

import (
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/config"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/stats"
)

// PaymentGuardConfig collects the dependencies of the payment guard chain.
// Idempotency and Recorder are optional.
type PaymentGuardConfig struct {
	Action       string
	GatewayParam string
	Payment      config.PaymentConfig
	Auditor      *Auditor
	Idempotency  *IdempotencyStore
	Limiter      *PaymentAttemptLimiter
	Recorder     stats.Recorder
}

// PaymentGuard returns the guard steps for a payment route, outermost
// first. The audit wraps everything so rejected attempts are recorded too;
// the rate limiter runs before any validation so malformed requests still
// count as attempts.
func PaymentGuard(cfg PaymentGuardConfig) []Middleware {
	if cfg.Action == "" {
		cfg.Action = "payment.create"
	}
	if cfg.GatewayParam == "" {
		cfg.GatewayParam = "gateway"
	}
	if cfg.Auditor == nil {
		cfg.Auditor = NewAuditor(nil, nil)
	}
	if cfg.Limiter == nil {
		cfg.Limiter = NewPaymentAttemptLimiter(PaymentLimiterConfig{})
	}

	chain := []Middleware{
		cfg.Auditor.Transaction(cfg.Action),
		PaymentConfigCheck(cfg.Payment),
	}
	if cfg.Idempotency != nil {
		chain = append(chain, Idempotency(cfg.Idempotency))
	}
	return append(chain,
		PaymentRateLimit(cfg.Limiter, cfg.Recorder),
		RequireGatewayParam(cfg.Payment, cfg.GatewayParam),
		ValidateAmount(),
		SanitizePaymentInput(),
	)
}
