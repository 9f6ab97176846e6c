package model

// ValidateIdentifierRequest is the body of POST /v1/identifiers/validate.
type ValidateIdentifierRequest struct {
	Identifier string `json:"identifier"`
}

// IdentifierResponse describes a classified identifier.
type IdentifierResponse struct {
	Valid     bool   `json:"isValid"`
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	Formatted string `json:"formatted"`
	HelpText  string `json:"helpText"`
}

// ValidateRUTRequest accepts either a combined RUT or its two parts.
type ValidateRUTRequest struct {
	RUT  string `json:"rut,omitempty"`
	Body string `json:"body,omitempty"`
	DV   string `json:"dv,omitempty"`
}

// RUTResponse is the result of POST /v1/rut/validate.
type RUTResponse struct {
	Valid     bool   `json:"isValid"`
	Formatted string `json:"formatted,omitempty"`
	Body      string `json:"body"`
	DV        string `json:"dv"`
	Message   string `json:"message,omitempty"`
}
