package handler

import (
	"net/http"
	"strings"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/pkg/identifier"
)

// IdentifierHandler exposes the identifier validator over HTTP. It holds no
// state; every operation is a pure function of the request.
type IdentifierHandler struct{}

// NewIdentifierHandler creates a new identifier handler
func NewIdentifierHandler() *IdentifierHandler {
	return &IdentifierHandler{}
}

// HelpResponse is the body of GET /v1/identifiers/help/{type}
type HelpResponse struct {
	Type     string `json:"type"`
	HelpText string `json:"helpText"`
}

// Validate handles POST /v1/identifiers/validate
func (h *IdentifierHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateIdentifierRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	res := identifier.Validate(req.Identifier)
	WriteData(w, http.StatusOK, model.IdentifierResponse{
		Valid:     res.Valid,
		Type:      string(res.Type),
		Message:   res.Message,
		Formatted: identifier.Format(req.Identifier),
		HelpText:  identifier.HelpText(res.Type),
	})
}

// Help handles GET /v1/identifiers/help/{type}. Unknown types get the
// generic hint.
func (h *IdentifierHandler) Help(w http.ResponseWriter, r *http.Request) {
	t := identifier.Type(strings.ToLower(r.PathValue("type")))
	WriteData(w, http.StatusOK, HelpResponse{
		Type:     string(t),
		HelpText: identifier.HelpText(t),
	})
}

// ValidateRUT handles POST /v1/rut/validate. The body carries either a
// combined "rut" or separate "body" and "dv" fields.
func (h *IdentifierHandler) ValidateRUT(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRUTRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	body, dv := req.Body, req.DV
	if strings.TrimSpace(req.RUT) != "" {
		body, dv = identifier.SplitRUT(req.RUT)
	}
	body, dv = identifier.CleanRUT(body), identifier.CleanRUT(dv)
	if body == "" && dv == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "rut", Message: "rut or body and dv are required"},
		}))
		return
	}

	resp := model.RUTResponse{Body: body, DV: dv}
	if msg := identifier.RUTValidationError(body, dv); msg != "" {
		resp.Message = msg
	} else {
		resp.Valid = true
		resp.Formatted = identifier.FormatRUT(body, dv)
	}
	WriteData(w, http.StatusOK, resp)
}
