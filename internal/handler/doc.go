// Package handler implements the HTTP handlers for the payment API.
//
// Handlers decode requests, call a service or the identifier library, and
// write JSON. Successful responses are wrapped as
//
//	{"success": true, "data": ...}
//
// and failures use model.APIError:
//
//	{"success": false, "error": "payment intent not found", "code": 3001}
//
// Service errors are translated in one place, MapServiceError.
//
// Routes are registered in cmd/server with Go 1.22 ServeMux patterns; path
// values are read with r.PathValue.
package handler
