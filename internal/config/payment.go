package config

import (
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

// Payment gateway environment variables
const (
	EnvWebpayCommerceCode     = "WEBPAY_COMMERCE_CODE"
	EnvWebpayAPIKey           = "WEBPAY_API_KEY"
	EnvWebpayEnvironment      = "WEBPAY_ENVIRONMENT"
	EnvKhipuReceiverID        = "KHIPU_RECEIVER_ID"
	EnvKhipuSecret            = "KHIPU_SECRET"
	EnvKhipuEnvironment       = "KHIPU_ENVIRONMENT"
	EnvMercadoPagoAccessToken = "MERCADOPAGO_ACCESS_TOKEN"
	EnvMercadoPagoPublicKey   = "MERCADOPAGO_PUBLIC_KEY"
	EnvMercadoPagoEnvironment = "MERCADOPAGO_ENVIRONMENT"
)

// PaymentConfig holds the credentials of every supported payment gateway.
// Any of them may be incomplete; requests are checked per gateway.
type PaymentConfig struct {
	Webpay      WebpayConfig
	Khipu       KhipuConfig
	MercadoPago MercadoPagoConfig
}

// GatewayConfig is the resolved configuration of a single gateway.
type GatewayConfig interface {
	Gateway() model.Gateway
	Env() string
	// MissingKeys lists the config keys without a value, e.g. "apiKey".
	MissingKeys() []string
	// MissingEnv lists the environment variables behind MissingKeys.
	MissingEnv() []string
}

// WebpayConfig holds Transbank Webpay settings
type WebpayConfig struct {
	CommerceCode string
	APIKey       string
	Environment  string
}

// KhipuConfig holds Khipu settings
type KhipuConfig struct {
	ReceiverID  string
	Secret      string
	Environment string
}

// MercadoPagoConfig holds Mercado Pago settings
type MercadoPagoConfig struct {
	AccessToken string
	PublicKey   string
	Environment string
}

// requirement ties a config key to its environment variable and value.
type requirement struct {
	key   string
	env   string
	value string
}

func missingKeys(reqs []requirement) []string {
	var out []string
	for _, r := range reqs {
		if r.value == "" {
			out = append(out, r.key)
		}
	}
	return out
}

func missingEnv(reqs []requirement) []string {
	var out []string
	for _, r := range reqs {
		if r.value == "" {
			out = append(out, r.env)
		}
	}
	return out
}

func (c WebpayConfig) requirements() []requirement {
	return []requirement{
		{"commerceCode", EnvWebpayCommerceCode, c.CommerceCode},
		{"apiKey", EnvWebpayAPIKey, c.APIKey},
		{"environment", EnvWebpayEnvironment, c.Environment},
	}
}

func (c WebpayConfig) Gateway() model.Gateway { return model.GatewayWebpay }
func (c WebpayConfig) Env() string            { return c.Environment }
func (c WebpayConfig) MissingKeys() []string  { return missingKeys(c.requirements()) }
func (c WebpayConfig) MissingEnv() []string   { return missingEnv(c.requirements()) }

func (c KhipuConfig) requirements() []requirement {
	return []requirement{
		{"receiverId", EnvKhipuReceiverID, c.ReceiverID},
		{"secret", EnvKhipuSecret, c.Secret},
		{"environment", EnvKhipuEnvironment, c.Environment},
	}
}

func (c KhipuConfig) Gateway() model.Gateway { return model.GatewayKhipu }
func (c KhipuConfig) Env() string            { return c.Environment }
func (c KhipuConfig) MissingKeys() []string  { return missingKeys(c.requirements()) }
func (c KhipuConfig) MissingEnv() []string   { return missingEnv(c.requirements()) }

func (c MercadoPagoConfig) requirements() []requirement {
	return []requirement{
		{"accessToken", EnvMercadoPagoAccessToken, c.AccessToken},
		{"publicKey", EnvMercadoPagoPublicKey, c.PublicKey},
		{"environment", EnvMercadoPagoEnvironment, c.Environment},
	}
}

func (c MercadoPagoConfig) Gateway() model.Gateway { return model.GatewayMercadoPago }
func (c MercadoPagoConfig) Env() string            { return c.Environment }
func (c MercadoPagoConfig) MissingKeys() []string  { return missingKeys(c.requirements()) }
func (c MercadoPagoConfig) MissingEnv() []string   { return missingEnv(c.requirements()) }

// ForGateway returns the configuration of g, or nil for an unknown gateway.
func (c PaymentConfig) ForGateway(g model.Gateway) GatewayConfig {
	switch g {
	case model.GatewayWebpay:
		return c.Webpay
	case model.GatewayKhipu:
		return c.Khipu
	case model.GatewayMercadoPago:
		return c.MercadoPago
	}
	return nil
}

// Missing lists every unset gateway variable as "gateway: ENV_VAR", in
// gateway order.
func (c PaymentConfig) Missing() []string {
	var out []string
	for _, g := range model.Gateways {
		gc := c.ForGateway(g)
		for _, env := range gc.MissingEnv() {
			out = append(out, string(g)+": "+env)
		}
	}
	return out
}

// Statuses summarizes each gateway's configuration without exposing values.
func (c PaymentConfig) Statuses() []model.GatewayStatus {
	out := make([]model.GatewayStatus, 0, len(model.Gateways))
	for _, g := range model.Gateways {
		gc := c.ForGateway(g)
		missing := gc.MissingKeys()
		out = append(out, model.GatewayStatus{
			Gateway:     g,
			Configured:  len(missing) == 0,
			Environment: gc.Env(),
			Missing:     missing,
		})
	}
	return out
}
