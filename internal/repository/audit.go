package repository

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/database"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

const defaultAuditListLimit = 50

// AuditSchema defines the payment_audit table. Statements are idempotent.
const AuditSchema = `
	DEFINE TABLE IF NOT EXISTS payment_audit SCHEMALESS;
	DEFINE INDEX IF NOT EXISTS payment_audit_user ON payment_audit FIELDS user_id, timestamp;
`

// AuditRepository persists transaction audit records
type AuditRepository struct {
	db database.Database
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db database.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the audit table and its index when missing
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.Execute(ctx, AuditSchema, nil); err != nil {
		return fmt.Errorf("define payment_audit: %w", err)
	}
	return nil
}

// Create stores one audit record
func (r *AuditRepository) Create(ctx context.Context, audit *model.TransactionAudit) error {
	query := `
		CREATE payment_audit CONTENT {
			action: $action,
			method: $method,
			url: $url,
			ip: $ip,
			user_agent: $user_agent,
			user_id: IF $user_id != "" THEN $user_id ELSE NONE END,
			request_id: $request_id,
			status: $status,
			body: $body,
			response: $response,
			timestamp: $timestamp
		}
	`

	vars := map[string]interface{}{
		"action":     audit.Action,
		"method":     audit.Method,
		"url":        audit.URL,
		"ip":         audit.IP,
		"user_agent": audit.UserAgent,
		"user_id":    audit.UserID,
		"request_id": audit.RequestID,
		"status":     audit.Status,
		"body":       audit.Body,
		"response":   audit.Response,
		"timestamp":  models.CustomDateTime{Time: audit.Timestamp},
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("create payment audit: %w", err)
	}

	if rows := firstStatementRows(results); len(rows) > 0 {
		if data, ok := rows[0].(map[string]interface{}); ok {
			audit.ID = extractRecordID(data["id"])
		}
	}
	return nil
}

// ListByUser returns a user's most recent audit records, newest first
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.TransactionAudit, error) {
	if limit <= 0 {
		limit = defaultAuditListLimit
	}

	query := `SELECT * FROM payment_audit WHERE user_id = $user_id ORDER BY timestamp DESC LIMIT $limit`
	vars := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("list payment audits: %w", err)
	}

	rows := firstStatementRows(results)
	audits := make([]*model.TransactionAudit, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		audits = append(audits, parseAudit(data))
	}
	return audits, nil
}

func parseAudit(data map[string]interface{}) *model.TransactionAudit {
	return &model.TransactionAudit{
		ID:        extractRecordID(data["id"]),
		Action:    getString(data, "action"),
		Method:    getString(data, "method"),
		URL:       getString(data, "url"),
		IP:        getString(data, "ip"),
		UserAgent: getString(data, "user_agent"),
		UserID:    getString(data, "user_id"),
		RequestID: getString(data, "request_id"),
		Status:    getInt(data, "status"),
		Body:      data["body"],
		Response:  data["response"],
		Timestamp: parseTime(data["timestamp"]),
	}
}
