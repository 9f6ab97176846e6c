package model

import (
	"strings"
	"time"
)

// Gateway identifies a supported payment provider.
type Gateway string

const (
	GatewayWebpay      Gateway = "webpay"
	GatewayKhipu       Gateway = "khipu"
	GatewayMercadoPago Gateway = "mercadopago"
)

// Gateways lists every supported gateway in display order.
var Gateways = []Gateway{GatewayWebpay, GatewayKhipu, GatewayMercadoPago}

// ParseGateway resolves a gateway name case-insensitively.
func ParseGateway(name string) (Gateway, bool) {
	switch g := Gateway(strings.ToLower(strings.TrimSpace(name))); g {
	case GatewayWebpay, GatewayKhipu, GatewayMercadoPago:
		return g, true
	}
	return "", false
}

// Amount limits in CLP
const (
	MinPaymentAmount int64 = 100
	MaxPaymentAmount int64 = 50_000_000
)

const (
	MaxDescriptionLength = 255
	CurrencyCLP          = "CLP"
)

// Payment body field names
const (
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldPayerEmail  = "payerEmail"
)

// PaymentPayload is the decoded JSON body of a payment request. It is shared
// by every step of the guard chain, which read and normalize fields in place.
// Unknown fields are preserved.
type PaymentPayload map[string]any

// Has reports whether key is present, even with a null value.
func (p PaymentPayload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Number returns key as a JSON number. Strings holding digits are not numbers.
func (p PaymentPayload) Number(key string) (float64, bool) {
	v, ok := p[key].(float64)
	return v, ok
}

// String returns key as a JSON string.
func (p PaymentPayload) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Set replaces key with value.
func (p PaymentPayload) Set(key string, value any) {
	p[key] = value
}

// PaymentIntentStatus represents the lifecycle state of a payment intent
type PaymentIntentStatus string

const (
	PaymentIntentPending PaymentIntentStatus = "pending"
)

// PaymentIntent is a payment accepted by the guard chain and waiting to be
// handed to its gateway.
type PaymentIntent struct {
	ID          string              `json:"id"`
	Gateway     Gateway             `json:"gateway"`
	Environment string              `json:"environment"`
	Amount      int64               `json:"amount"`
	Currency    string              `json:"currency"`
	Description string              `json:"description,omitempty"`
	PayerEmail  string              `json:"payerEmail,omitempty"`
	UserID      string              `json:"userId,omitempty"`
	Status      PaymentIntentStatus `json:"status"`
	Warnings    []string            `json:"warnings,omitempty"`
	CreatedOn   time.Time           `json:"createdOn"`
}

// CreatePaymentIntentRequest carries the normalized fields the service needs.
type CreatePaymentIntentRequest struct {
	Gateway     Gateway
	Environment string
	Amount      int64
	Description string
	PayerEmail  string
	UserID      string
	Warnings    []string
}

// GatewayStatus reports whether a gateway has all its configuration.
// Missing lists environment variable names, never values.
type GatewayStatus struct {
	Gateway     Gateway  `json:"gateway"`
	Configured  bool     `json:"configured"`
	Environment string   `json:"environment,omitempty"`
	Missing     []string `json:"missing,omitempty"`
}
