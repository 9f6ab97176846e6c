package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/config"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

type guardFixture struct {
	mux     *http.ServeMux
	sink    *memorySink
	handler *captureHandler
}

func newGuardFixture(payment config.PaymentConfig) *guardFixture {
	var logs bytes.Buffer
	f := &guardFixture{
		mux:     http.NewServeMux(),
		sink:    &memorySink{},
		handler: &captureHandler{},
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.handler.called = true
		f.handler.ctx = r.Context()
		w.WriteHeader(http.StatusCreated)
	})
	guard := PaymentGuard(PaymentGuardConfig{
		Payment: payment,
		Auditor: newTestAuditor(&logs, f.sink),
		Limiter: newTestLimiter(newFakeClock(), never),
	})
	f.mux.Handle("POST /v1/payments/{gateway}", Chain(final, guard...))
	return f
}

func (f *guardFixture) post(gateway, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/"+gateway, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:5555"
	rr := httptest.NewRecorder()
	f.mux.ServeHTTP(rr, req)
	return rr
}

// ============================================================================
// PaymentGuard Tests
// ============================================================================

func TestPaymentGuard_ValidRequest_NormalizedEverywhere(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(completePaymentConfig())

	rr := f.post("webpay", `{"amount":1500.6,"description":"  <b>Gastos</b> comunes ","payerEmail":"a@b.cl","unit":"1204"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	payload := GetPaymentPayload(f.handler.ctx)
	if payload[model.FieldAmount] != float64(1501) {
		t.Errorf("expected rounded amount 1501, got %v", payload[model.FieldAmount])
	}
	if payload[model.FieldDescription] != "bGastos/b comunes" {
		t.Errorf("expected sanitized description, got %q", payload[model.FieldDescription])
	}
	if payload["unit"] != "1204" {
		t.Error("unknown fields should be preserved")
	}
	if gc := GetGatewayConfig(f.handler.ctx); gc == nil || gc.Gateway() != model.GatewayWebpay {
		t.Error("expected webpay configuration in context")
	}

	if len(f.sink.records) != 1 {
		t.Fatalf("expected one audit record, got %d", len(f.sink.records))
	}
	rec := f.sink.records[0]
	if rec.Status != http.StatusCreated {
		t.Errorf("expected audited status 201, got %d", rec.Status)
	}
	body, ok := rec.Body.(model.PaymentPayload)
	if !ok {
		t.Fatalf("expected payload body in audit record, got %T", rec.Body)
	}
	if body[model.FieldAmount] != float64(1501) {
		t.Errorf("audit record should hold the rounded amount, got %v", body[model.FieldAmount])
	}
}

func TestPaymentGuard_RateLimitRunsBeforeValidation(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(completePaymentConfig())

	for i := 0; i < 5; i++ {
		if rr := f.post("webpay", `{"amount":5}`); rr.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected 400, got %d", i+1, rr.Code)
		}
	}

	rr := f.post("webpay", `{"amount":5000}`)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after five attempts, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body["retryAfter"] != float64(15*60*1000) {
		t.Errorf("expected retryAfter of 900000ms, got %v", body["retryAfter"])
	}

	if f.handler.called {
		t.Error("handler should never run")
	}
	if len(f.sink.records) != 6 {
		t.Errorf("every attempt should be audited, got %d records", len(f.sink.records))
	}
}

func TestPaymentGuard_OversizedBody_NeverReachesHandler(t *testing.T) {
	t.Parallel()
	f := newGuardFixture(completePaymentConfig())

	rr := f.post("webpay", strings.Repeat(" ", maxPaymentBodyBytes+1)+`{"amount":1000}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if f.handler.called {
		t.Error("handler should not run")
	}
	if len(f.sink.records) != 1 || f.sink.records[0].Status != http.StatusBadRequest {
		t.Errorf("expected one audited 400, got %+v", f.sink.records)
	}
}

func TestPaymentGuard_GatewayChecks(t *testing.T) {
	t.Parallel()

	payment := completePaymentConfig()
	payment.Khipu = config.KhipuConfig{}

	tests := []struct {
		gateway    string
		wantStatus int
	}{
		{"webpay", http.StatusCreated},
		{"paypal", http.StatusBadRequest},
		{"khipu", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.gateway, func(t *testing.T) {
			t.Parallel()
			f := newGuardFixture(payment)

			rr := f.post(tt.gateway, `{"amount":1000}`)
			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantStatus == http.StatusServiceUnavailable {
				body := decodeError(t, rr)
				if missing, _ := body["missing"].([]any); len(missing) == 0 {
					t.Error("expected missing configuration keys")
				}
			}
		})
	}
}

func TestPaymentGuard_ConfigWarningsDoNotBlock(t *testing.T) {
	t.Parallel()

	payment := completePaymentConfig()
	payment.MercadoPago = config.MercadoPagoConfig{}
	f := newGuardFixture(payment)

	rr := f.post("webpay", `{"amount":1000}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if len(GetPaymentConfigWarnings(f.handler.ctx)) == 0 {
		t.Error("expected configuration warnings for mercadopago")
	}
}
