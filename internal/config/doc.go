// Package config manages application configuration for the payment API.
//
// Configuration is read from environment variables. A .env file in the
// working directory is loaded first when present (github.com/joho/godotenv);
// variables already set in the process environment win.
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, proxy trust)
//   - PaymentConfig: Webpay, Khipu and Mercado Pago credentials
//   - RateLimitConfig: payment attempt window and sweep settings
//   - AuditConfig / DatabaseConfig: SurrealDB persistence of audit records
//   - StatsConfig: Redis counters for allowed and denied attempts
//
// # Payment Gateways
//
// Gateway credentials are optional at startup. Validate does not fail on
// them; instead PaymentConfig.Missing and GatewayConfig.MissingKeys feed the
// payment guard, which warns or answers 503 per request:
//
//	WEBPAY_COMMERCE_CODE      WEBPAY_API_KEY          WEBPAY_ENVIRONMENT
//	KHIPU_RECEIVER_ID         KHIPU_SECRET            KHIPU_ENVIRONMENT
//	MERCADOPAGO_ACCESS_TOKEN  MERCADOPAGO_PUBLIC_KEY  MERCADOPAGO_ENVIRONMENT
package config
