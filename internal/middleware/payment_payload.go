package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

const maxPaymentBodyBytes = 1 << 20

var (
	errPayloadNotObject   = errors.New("request body must be a JSON object")
	errPayloadInvalidJSON = errors.New("invalid JSON body")
	errBodyTooLarge       = errors.New("request body too large")
	errBodyUnreadable     = errors.New("failed to read request body")
)

// ParsePaymentPayload decodes the JSON body once and stores it in the
// context for the rest of the guard chain. An empty body is an empty payload.
func ParsePaymentPayload() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, _, err := loadPaymentPayload(w, r)
			if err != nil {
				model.NewBadRequestError(err.Error()).WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPaymentPayload returns the payload decoded by ParsePaymentPayload, or
// nil when the body has not been parsed.
func GetPaymentPayload(ctx context.Context) model.PaymentPayload {
	if p, ok := ctx.Value(paymentPayloadKey).(model.PaymentPayload); ok {
		return p
	}
	return nil
}

// loadPaymentPayload returns the payload already in the context or decodes
// it from the body. The raw body is put back on the request so a later step
// can read it again. A decode failure is kept in the context too: every later
// step gets the same error and the body is never read a second time.
func loadPaymentPayload(w http.ResponseWriter, r *http.Request) (*http.Request, []byte, error) {
	switch v := r.Context().Value(paymentPayloadKey).(type) {
	case model.PaymentPayload:
		return r, nil, nil
	case error:
		return r, nil, v
	}

	payload, raw, err := decodePaymentPayload(w, r)
	var stored any = payload
	if err != nil {
		stored = err
	}
	ctx := context.WithValue(r.Context(), paymentPayloadKey, stored)
	return r.WithContext(ctx), raw, err
}

func decodePaymentPayload(w http.ResponseWriter, r *http.Request) (model.PaymentPayload, []byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPaymentBodyBytes))
	if err != nil {
		r.Body = http.NoBody
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, errBodyTooLarge
		}
		return nil, nil, errBodyUnreadable
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	payload := model.PaymentPayload{}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
		if trimmed[0] != '{' {
			return nil, raw, errPayloadNotObject
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, raw, errPayloadInvalidJSON
		}
	}
	return payload, raw, nil
}
