package model

import "time"

// TransactionAudit is one audit record for a payment request, written once
// per request before the response leaves the process.
type TransactionAudit struct {
	ID        string    `json:"id,omitempty"`
	Action    string    `json:"action"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	Status    int       `json:"status"`
	Body      any       `json:"body,omitempty"`
	Response  any       `json:"response,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
