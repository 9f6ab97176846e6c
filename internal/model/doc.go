// Package model defines the data structures shared by the API layers.
//
// # Error Envelope
//
// Every failed request is answered with an APIError:
//
//	{"success": false, "error": "amount must be a positive number", "code": 4004}
//
// Constructors such as NewUnsupportedGatewayError, NewServiceUnavailableError
// and NewRateLimitError fill in the status code and the extra fields
// (missing, retryAfter, min, max) for each failure kind.
//
// # Payments
//
// Gateway is a closed set of providers (webpay, khipu, mercadopago).
// PaymentPayload is the decoded request body passed along the guard chain;
// PaymentIntent is what the service stores once the chain lets a request
// through. TransactionAudit is the record written for each payment request.
//
// Amount limits are expressed in CLP, which has no minor unit:
//
//	const (
//	    MinPaymentAmount int64 = 100
//	    MaxPaymentAmount int64 = 50_000_000
//	)
package model
