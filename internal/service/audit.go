package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
)

// AuditRepository defines the interface for audit storage
type AuditRepository interface {
	Create(ctx context.Context, audit *model.TransactionAudit) error
}

// TaskSubmitter queues work off the request path
type TaskSubmitter interface {
	Submit(task func()) bool
}

// AuditService persists transaction audit records in the background
type AuditService struct {
	repo         AuditRepository
	pool         TaskSubmitter
	logger       *slog.Logger
	writeTimeout time.Duration
}

// AuditServiceConfig holds configuration for the audit service
type AuditServiceConfig struct {
	Repo         AuditRepository
	Pool         TaskSubmitter
	Logger       *slog.Logger
	WriteTimeout time.Duration
}

// NewAuditService creates a new audit service
func NewAuditService(cfg AuditServiceConfig) *AuditService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &AuditService{
		repo:         cfg.Repo,
		pool:         cfg.Pool,
		logger:       cfg.Logger,
		writeTimeout: cfg.WriteTimeout,
	}
}

// Record queues rec for persistence. The request context is not reused
// because the write outlives the request.
func (s *AuditService) Record(_ context.Context, rec model.TransactionAudit) {
	if !s.pool.Submit(func() { s.persist(rec) }) {
		s.logger.Warn("transaction audit not persisted",
			"error", ErrAuditQueueFull,
			"action", rec.Action,
			"request_id", rec.RequestID,
		)
	}
}

func (s *AuditService) persist(rec model.TransactionAudit) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, &rec); err != nil {
		s.logger.Error("failed to persist transaction audit",
			"error", err,
			"action", rec.Action,
			"request_id", rec.RequestID,
		)
	}
}
