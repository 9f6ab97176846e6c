package handler

import (
	"context"
	"math"
	"net/http"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/config"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/middleware"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

// PaymentService interface for the handler
type PaymentService interface {
	CreateIntent(ctx context.Context, req model.CreatePaymentIntentRequest) (*model.PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
}

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	payments PaymentService
	cfg      config.PaymentConfig
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments PaymentService, cfg config.PaymentConfig) *PaymentHandler {
	return &PaymentHandler{payments: payments, cfg: cfg}
}

// Gateways handles GET /v1/payments/gateways. Only key names are reported.
func (h *PaymentHandler) Gateways(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.cfg.Statuses())
}

// Create handles POST /v1/payments/{gateway}. It runs behind the payment
// guard chain, so the payload has already been validated and normalized.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := middleware.GetPaymentPayload(ctx)
	if payload == nil {
		WriteError(w, model.NewBadRequestError("request body required"))
		return
	}

	amount, ok := payload.Number(model.FieldAmount)
	if !ok {
		WriteError(w, model.NewInvalidAmountError("amount must be a positive number", model.MinPaymentAmount, model.MaxPaymentAmount))
		return
	}
	description, _ := payload.String(model.FieldDescription)
	payerEmail, _ := payload.String(model.FieldPayerEmail)

	req := model.CreatePaymentIntentRequest{
		Gateway:     model.Gateway(r.PathValue("gateway")),
		Amount:      int64(math.Round(amount)),
		Description: description,
		PayerEmail:  payerEmail,
		UserID:      middleware.GetUserID(ctx),
		Warnings:    middleware.GetPaymentConfigWarnings(ctx),
	}
	if gc := middleware.GetGatewayConfig(ctx); gc != nil {
		req.Gateway = gc.Gateway()
		req.Environment = gc.Env()
	}

	intent, err := h.payments.CreateIntent(ctx, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, intent)
}

// GetIntent handles GET /v1/payments/intents/{id}
func (h *PaymentHandler) GetIntent(w http.ResponseWriter, r *http.Request) {
	intent, err := h.payments.GetIntent(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if intent.UserID != "" && userID != intent.UserID {
		WriteError(w, model.NewNotFoundError("payment intent"))
		return
	}

	WriteData(w, http.StatusOK, intent)
}
