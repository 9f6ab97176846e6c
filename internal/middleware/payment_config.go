package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/config"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

const configWarningInterval = time.Minute

// PaymentConfigCheck reports missing gateway variables without blocking.
// The list ("gateway: ENV_VAR") is attached to the context and logged on
// every request that sees it: at Warn once per configWarningInterval and at
// Debug in between.
func PaymentConfigCheck(cfg config.PaymentConfig) Middleware {
	return paymentConfigCheck(cfg, nil)
}

// paymentConfigCheck logs through logger, or slog.Default when nil.
func paymentConfigCheck(cfg config.PaymentConfig, logger *slog.Logger) Middleware {
	warn := &rate.Sometimes{First: 1, Interval: configWarningInterval}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			missing := cfg.Missing()
			if len(missing) > 0 {
				log := logger
				if log == nil {
					log = slog.Default()
				}
				level := slog.LevelDebug
				warn.Do(func() { level = slog.LevelWarn })
				log.LogAttrs(r.Context(), level, "payment gateway configuration incomplete",
					slog.Any("missing", missing),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				r = r.WithContext(context.WithValue(r.Context(), paymentConfigWarningsKey, missing))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPaymentConfigWarnings returns the advisory list set by
// PaymentConfigCheck, nil when every gateway is configured.
func GetPaymentConfigWarnings(ctx context.Context) []string {
	if w, ok := ctx.Value(paymentConfigWarningsKey).([]string); ok {
		return w
	}
	return nil
}

// RequireGateway blocks requests for a gateway that is unknown (400) or
// missing configuration (503). On success the gateway configuration is
// available through GetGatewayConfig.
func RequireGateway(cfg config.PaymentConfig, name string) Middleware {
	return requireGateway(cfg, func(*http.Request) string { return name })
}

// RequireGatewayParam is RequireGateway with the gateway name taken from
// the route's path value param.
func RequireGatewayParam(cfg config.PaymentConfig, param string) Middleware {
	return requireGateway(cfg, func(r *http.Request) string { return r.PathValue(param) })
}

func requireGateway(cfg config.PaymentConfig, nameOf func(*http.Request) string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := nameOf(r)
			gateway, ok := model.ParseGateway(name)
			if !ok {
				model.NewUnsupportedGatewayError(name).WriteJSON(w)
				return
			}

			gc := cfg.ForGateway(gateway)
			if missing := gc.MissingKeys(); len(missing) > 0 {
				slog.Warn("payment gateway not configured",
					slog.String("gateway", string(gateway)),
					slog.Any("missing", gc.MissingEnv()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				model.NewServiceUnavailableError(string(gateway), missing).WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), gatewayConfigKey, gc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetGatewayConfig returns the configuration resolved by RequireGateway.
func GetGatewayConfig(ctx context.Context) config.GatewayConfig {
	if gc, ok := ctx.Value(gatewayConfigKey).(config.GatewayConfig); ok {
		return gc
	}
	return nil
}
