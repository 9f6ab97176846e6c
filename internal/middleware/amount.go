package middleware

import (
	"fmt"
	"math"
	"net/http"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

const msgAmountNotPositive = "amount must be a positive number"

// ValidateAmount checks amount against the CLP limits and rounds it to
// whole pesos in the shared payload.
func ValidateAmount() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, _, err := loadPaymentPayload(w, r)
			if err != nil {
				model.NewBadRequestError(err.Error()).WriteJSON(w)
				return
			}
			payload := GetPaymentPayload(r.Context())

			amount, ok := payload.Number(model.FieldAmount)
			if apiErr := checkAmount(amount, ok); apiErr != nil {
				apiErr.WriteJSON(w)
				return
			}

			payload.Set(model.FieldAmount, math.Round(amount))
			next.ServeHTTP(w, r)
		})
	}
}

func checkAmount(amount float64, ok bool) *model.APIError {
	switch {
	case !ok || math.IsNaN(amount) || amount <= 0:
		return model.NewInvalidAmountError(msgAmountNotPositive, model.MinPaymentAmount, model.MaxPaymentAmount)
	case amount < float64(model.MinPaymentAmount):
		return model.NewInvalidAmountError(
			fmt.Sprintf("amount must be at least %d CLP", model.MinPaymentAmount),
			model.MinPaymentAmount, model.MaxPaymentAmount)
	case amount > float64(model.MaxPaymentAmount):
		return model.NewInvalidAmountError(
			fmt.Sprintf("amount must not exceed %d CLP", model.MaxPaymentAmount),
			model.MinPaymentAmount, model.MaxPaymentAmount)
	}
	return nil
}
