package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

// AuditSink receives every audit record after it has been logged. Record
// must not block the request for long; implementations hand the record off.
type AuditSink interface {
	Record(ctx context.Context, rec model.TransactionAudit)
}

// Auditor writes one structured audit record per request.
type Auditor struct {
	logger *slog.Logger
	sink   AuditSink
	now    func() time.Time
}

// NewAuditor creates an auditor. A nil logger means slog.Default(); sink may
// be nil.
func NewAuditor(logger *slog.Logger, sink AuditSink) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{logger: logger, sink: sink, now: time.Now}
}

// AuditTransaction is NewAuditor(nil, sink).Transaction(action).
func AuditTransaction(action string, sink AuditSink) Middleware {
	return NewAuditor(nil, sink).Transaction(action)
}

// Transaction buffers the downstream response and logs it together with the
// request before anything is sent to the client. The status and body that
// reach the client are exactly what the handler produced.
func (a *Auditor) Transaction(action string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A body that fails to decode is rejected further down the chain;
			// the raw bytes are still recorded.
			r, raw, _ := loadPaymentPayload(w, r)

			buf := &bufferedResponse{header: w.Header()}
			next.ServeHTTP(buf, r)

			rec := a.record(action, r, raw, buf)
			a.logger.LogAttrs(r.Context(), slog.LevelInfo, "transaction audit",
				slog.String("action", rec.Action),
				slog.String("method", rec.Method),
				slog.String("url", rec.URL),
				slog.String("ip", rec.IP),
				slog.String("user_agent", rec.UserAgent),
				slog.String("user_id", rec.UserID),
				slog.String("request_id", rec.RequestID),
				slog.Int("status", rec.Status),
				slog.Any("body", rec.Body),
				slog.Any("response", rec.Response),
				slog.Time("timestamp", rec.Timestamp),
			)
			if a.sink != nil {
				a.sink.Record(r.Context(), rec)
			}

			buf.flush(w)
		})
	}
}

func (a *Auditor) record(action string, r *http.Request, raw []byte, buf *bufferedResponse) model.TransactionAudit {
	var body any
	if p := GetPaymentPayload(r.Context()); p != nil {
		body = maps.Clone(p)
	} else if len(raw) > 0 {
		body = string(raw)
	}

	return model.TransactionAudit{
		Action:    action,
		Method:    r.Method,
		URL:       r.URL.RequestURI(),
		IP:        GetClientIP(r),
		UserAgent: r.UserAgent(),
		UserID:    GetUserID(r.Context()),
		RequestID: GetRequestID(r.Context()),
		Status:    buf.statusCode(),
		Body:      body,
		Response:  decodeResponse(buf.body.Bytes()),
		Timestamp: a.now().UTC(),
	}
}

// decodeResponse returns the JSON value of b, or b as text when it is not
// JSON.
func decodeResponse(b []byte) any {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}

// bufferedResponse holds the status and body until flush. Headers go
// straight to the real writer's header map.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	w.WriteHeader(b.statusCode())
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
