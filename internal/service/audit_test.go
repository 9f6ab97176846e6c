package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/workers"
)

type mockAuditRepo struct {
	mu      sync.Mutex
	created []model.TransactionAudit
	err     error
	hadDeadline bool
}

func (m *mockAuditRepo) Create(ctx context.Context, audit *model.TransactionAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, m.hadDeadline = ctx.Deadline()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *audit)
	return nil
}

// syncSubmitter runs tasks inline, or refuses them when full is set
type syncSubmitter struct{ full bool }

func (s syncSubmitter) Submit(task func()) bool {
	if s.full {
		return false
	}
	task()
	return true
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func sampleAudit() model.TransactionAudit {
	return model.TransactionAudit{
		Action:    "payment.create",
		Method:    "POST",
		URL:       "/v1/payments/webpay",
		RequestID: "req-1",
		Status:    201,
		Timestamp: time.Now(),
	}
}

func TestAuditService_Record_Persists(t *testing.T) {
	repo := &mockAuditRepo{}
	logger, _ := bufferLogger()
	svc := NewAuditService(AuditServiceConfig{Repo: repo, Pool: syncSubmitter{}, Logger: logger})

	svc.Record(context.Background(), sampleAudit())

	require.Len(t, repo.created, 1)
	assert.Equal(t, "req-1", repo.created[0].RequestID)
	assert.True(t, repo.hadDeadline, "writes run with a timeout")
}

func TestAuditService_Record_QueueFull(t *testing.T) {
	repo := &mockAuditRepo{}
	logger, buf := bufferLogger()
	svc := NewAuditService(AuditServiceConfig{Repo: repo, Pool: syncSubmitter{full: true}, Logger: logger})

	svc.Record(context.Background(), sampleAudit())

	assert.Empty(t, repo.created)
	assert.Contains(t, buf.String(), "transaction audit not persisted")
	assert.Contains(t, buf.String(), ErrAuditQueueFull.Error())
}

func TestAuditService_Record_RepoError(t *testing.T) {
	repo := &mockAuditRepo{err: errors.New("connection refused")}
	logger, buf := bufferLogger()
	svc := NewAuditService(AuditServiceConfig{Repo: repo, Pool: syncSubmitter{}, Logger: logger})

	svc.Record(context.Background(), sampleAudit())

	assert.Contains(t, buf.String(), "failed to persist transaction audit")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestAuditService_WithWorkerPool(t *testing.T) {
	repo := &mockAuditRepo{}
	logger, _ := bufferLogger()
	pool := workers.NewPool(2, 16, logger)
	svc := NewAuditService(AuditServiceConfig{Repo: repo, Pool: pool, Logger: logger})

	for range 5 {
		svc.Record(context.Background(), sampleAudit())
	}
	pool.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Len(t, repo.created, 5)
}
