package model

import (
	"encoding/json"
	"testing"
)

func TestParseGateway(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Gateway
		ok   bool
	}{
		{"webpay", GatewayWebpay, true},
		{"Khipu", GatewayKhipu, true},
		{" MERCADOPAGO ", GatewayMercadoPago, true},
		{"paypal", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseGateway(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGateway(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPaymentPayload_Accessors(t *testing.T) {
	t.Parallel()

	var p PaymentPayload
	if err := json.Unmarshal([]byte(`{"amount":1500.7,"description":"gastos comunes","payerEmail":null,"unit":"A-12","count":"5"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v, ok := p.Number(FieldAmount); !ok || v != 1500.7 {
		t.Errorf("Number(amount) = (%v, %v)", v, ok)
	}
	if _, ok := p.Number("count"); ok {
		t.Error("a JSON string must not be read as a number")
	}
	if v, ok := p.String(FieldDescription); !ok || v != "gastos comunes" {
		t.Errorf("String(description) = (%q, %v)", v, ok)
	}
	if !p.Has(FieldPayerEmail) {
		t.Error("null field should still be reported as present")
	}
	if p.Has("missing") {
		t.Error("absent field reported as present")
	}

	p.Set(FieldAmount, int64(1501))
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(out, &back)
	if back["amount"] != float64(1501) {
		t.Errorf("expected rewritten amount 1501, got %v", back["amount"])
	}
	if back["unit"] != "A-12" {
		t.Error("unknown fields should be preserved")
	}
}
