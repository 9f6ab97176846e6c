package middleware

import (
	"net/http"
	"strings"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/pkg/identifier"
)

const msgInvalidPayerEmail = "invalid payer email"

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizePaymentInput cleans description in place and rejects a payer
// email that is not a well-formed address. Empty or null fields are skipped.
func SanitizePaymentInput() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, _, err := loadPaymentPayload(w, r)
			if err != nil {
				model.NewBadRequestError(err.Error()).WriteJSON(w)
				return
			}
			payload := GetPaymentPayload(r.Context())

			if desc, ok := payload.String(model.FieldDescription); ok && desc != "" {
				payload.Set(model.FieldDescription, SanitizeDescription(desc))
			}

			if v := payload[model.FieldPayerEmail]; v != nil {
				email, isString := v.(string)
				if !isString || (email != "" && !identifier.ValidateEmail(email)) {
					model.NewInvalidEmailError(msgInvalidPayerEmail).WriteJSON(w)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SanitizeDescription trims s, keeps at most MaxDescriptionLength characters
// and removes every '<' and '>'.
func SanitizeDescription(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > model.MaxDescriptionLength {
		s = string(runes[:model.MaxDescriptionLength])
	}
	return angleBrackets.Replace(s)
}
