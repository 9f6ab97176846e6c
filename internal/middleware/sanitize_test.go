package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

// ============================================================================
// SanitizeDescription Tests
// ============================================================================

func TestSanitizeDescription_LongWithScript(t *testing.T) {
	t.Parallel()

	desc := "<script>alert(1)</script>" + strings.Repeat("a", 275)
	if utf8.RuneCountInString(desc) != 300 {
		t.Fatalf("fixture should be 300 characters, got %d", utf8.RuneCountInString(desc))
	}

	got := SanitizeDescription(desc)

	if strings.ContainsAny(got, "<>") {
		t.Errorf("angle brackets must be removed, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 255 {
		t.Errorf("expected at most 255 characters, got %d", n)
	}
	want := strings.NewReplacer("<", "", ">", "").Replace(desc[:255])
	if got != want {
		t.Errorf("expected truncate-then-strip result, got %q", got)
	}
}

func TestSanitizeDescription_TrimsAndCountsRunes(t *testing.T) {
	t.Parallel()

	if got := SanitizeDescription("  Gastos comunes marzo  "); got != "Gastos comunes marzo" {
		t.Errorf("expected trimmed description, got %q", got)
	}

	accented := strings.Repeat("ñ", 300)
	got := SanitizeDescription(accented)
	if n := utf8.RuneCountInString(got); n != 255 {
		t.Errorf("expected 255 characters, got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation must not split a multi-byte character")
	}
}

// ============================================================================
// SanitizePaymentInput Tests
// ============================================================================

func TestSanitizePaymentInput_RewritesDescription(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	body := `{"amount":1000,"description":"  <b>Depto 301</b>  "}`

	SanitizePaymentInput()(handler).ServeHTTP(httptest.NewRecorder(), newPaymentRequest(body))

	if !handler.called {
		t.Fatal("expected request to continue")
	}
	desc, _ := GetPaymentPayload(handler.ctx).String("description")
	if desc != "bDepto 301/b" {
		t.Errorf("unexpected sanitized description %q", desc)
	}
}

func TestSanitizePaymentInput_InvalidEmail_Returns400(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"payerEmail":"not-an-email"}`,
		`{"payerEmail":"a b@c.cl"}`,
		`{"payerEmail":42}`,
	} {
		handler := &captureHandler{}
		rr := httptest.NewRecorder()

		SanitizePaymentInput()(handler).ServeHTTP(rr, newPaymentRequest(body))

		if rr.Code != http.StatusBadRequest || handler.called {
			t.Errorf("%s: expected 400, got %d", body, rr.Code)
			continue
		}
		if got := decodeError(t, rr); got["error"] != "invalid payer email" {
			t.Errorf("%s: unexpected error %v", body, got["error"])
		}
	}
}

func TestSanitizePaymentInput_ValidOrAbsentEmail_Continues(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{"payerEmail":"Vecino@CuentasClaras.cl"}`,
		`{"payerEmail":""}`,
		`{"payerEmail":null}`,
		`{}`,
	} {
		handler := &captureHandler{}
		SanitizePaymentInput()(handler).ServeHTTP(httptest.NewRecorder(), newPaymentRequest(body))

		if !handler.called {
			t.Errorf("%s: expected request to continue", body)
		}
	}

	handler := &captureHandler{}
	SanitizePaymentInput()(handler).ServeHTTP(httptest.NewRecorder(), newPaymentRequest(`{"payerEmail":"Vecino@CuentasClaras.cl"}`))
	if email, _ := GetPaymentPayload(handler.ctx).String("payerEmail"); email != "Vecino@CuentasClaras.cl" {
		t.Errorf("a valid email is passed on unmodified, got %q", email)
	}
}
